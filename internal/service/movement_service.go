package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finmov/internal/errors"
	"finmov/internal/model"
	"finmov/internal/repository"
)

// CreateMovementInput carries the fields an admin supplies when recording a
// movement. Date is optional and defaults to the creation time.
type CreateMovementInput struct {
	Concept string
	Amount  decimal.Decimal
	Type    model.MovementType
	Date    time.Time
	UserID  uuid.UUID
}

// UpdateMovementInput carries the mutable fields of an existing movement.
type UpdateMovementInput struct {
	Concept string
	Amount  decimal.Decimal
	Type    model.MovementType
	Date    time.Time
}

// MovementService exposes movement CRUD with server-side validation. The
// type enumeration and positive-amount rules are enforced here rather than
// delegated to the store schema.
type MovementService interface {
	List(ctx context.Context) ([]model.Movement, error)
	Create(ctx context.Context, in CreateMovementInput) (*model.Movement, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateMovementInput) (*model.Movement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type movementService struct {
	movementRepo repository.MovementRepository
	userRepo     repository.UserRepository
}

// NewMovementService builds a MovementService.
func NewMovementService(movementRepo repository.MovementRepository, userRepo repository.UserRepository) MovementService {
	return &movementService{movementRepo: movementRepo, userRepo: userRepo}
}

func validateMovementFields(concept string, amount decimal.Decimal, movementType model.MovementType) error {
	if concept == "" {
		return fmt.Errorf("%w: concept is required", apperrors.ErrValidation)
	}
	if !movementType.Valid() {
		return fmt.Errorf("%w: type must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

func (s *movementService) List(ctx context.Context) ([]model.Movement, error) {
	return s.movementRepo.List(ctx)
}

func (s *movementService) Create(ctx context.Context, in CreateMovementInput) (*model.Movement, error) {
	if err := validateMovementFields(in.Concept, in.Amount, in.Type); err != nil {
		return nil, err
	}
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown userId", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("check movement user: %w", err)
	}

	movement := &model.Movement{
		Concept: in.Concept,
		Amount:  in.Amount,
		Type:    in.Type,
		Date:    in.Date,
		UserID:  in.UserID,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("create movement: %w", err)
	}
	// Re-read so the response carries the owning user's name.
	return s.movementRepo.FindByID(ctx, movement.ID)
}

func (s *movementService) Update(ctx context.Context, id uuid.UUID, in UpdateMovementInput) (*model.Movement, error) {
	if err := validateMovementFields(in.Concept, in.Amount, in.Type); err != nil {
		return nil, err
	}

	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovementNotFound
		}
		return nil, fmt.Errorf("find movement: %w", err)
	}

	movement.Concept = in.Concept
	movement.Amount = in.Amount
	movement.Type = in.Type
	if !in.Date.IsZero() {
		movement.Date = in.Date
	}
	if err := s.movementRepo.Update(ctx, movement); err != nil {
		return nil, fmt.Errorf("update movement: %w", err)
	}
	return movement, nil
}

func (s *movementService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.movementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMovementNotFound
		}
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}
