package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"finmov/internal/model"
)

// MovementRepository defines movement persistence operations.
type MovementRepository interface {
	Create(ctx context.Context, movement *model.Movement) error
	Update(ctx context.Context, movement *model.Movement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Movement, error)
	// List returns all movements newest first with the owning user preloaded.
	List(ctx context.Context) ([]model.Movement, error)
	// ListForReport returns the amount/type/date projection of every movement.
	ListForReport(ctx context.Context) ([]model.Movement, error)
}

type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new movement repository.
func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, movement *model.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *movementRepository) Update(ctx context.Context, movement *model.Movement) error {
	return r.db.WithContext(ctx).Save(movement).Error
}

// Delete performs a hard delete.
func (r *movementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Movement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *movementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Movement, error) {
	var movement model.Movement
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&movement).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *movementRepository) List(ctx context.Context) ([]model.Movement, error) {
	var movements []model.Movement
	if err := r.db.WithContext(ctx).Preload("User").Order("date DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *movementRepository) ListForReport(ctx context.Context) ([]model.Movement, error) {
	var movements []model.Movement
	if err := r.db.WithContext(ctx).Select("amount", "type", "date").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
