package service

import (
	"context"
	"fmt"

	"finmov/internal/report"
	"finmov/internal/repository"
)

// ReportService produces the financial report. Every call re-reads the full
// movement set; there is no caching or incremental maintenance, so callers
// should not assume sub-linear cost.
type ReportService interface {
	Generate(ctx context.Context) (report.Report, error)
}

type reportService struct {
	movementRepo repository.MovementRepository
}

// NewReportService builds a ReportService.
func NewReportService(movementRepo repository.MovementRepository) ReportService {
	return &reportService{movementRepo: movementRepo}
}

func (s *reportService) Generate(ctx context.Context) (report.Report, error) {
	movements, err := s.movementRepo.ListForReport(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("list movements: %w", err)
	}
	return report.Aggregate(movements), nil
}
