package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"finmov/internal/cache"
	apperrors "finmov/internal/errors"
	"finmov/internal/model"
	"finmov/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes the admin-facing user operations plus a cached
// single-user read. Only name and role are mutable; users are never deleted.
type UserService interface {
	List(ctx context.Context) ([]model.SafeUser, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SafeUser, error)
	Update(ctx context.Context, id uuid.UUID, name string, role model.Role) (*model.SafeUser, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func (s *userService) List(ctx context.Context) ([]model.SafeUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	safe := make([]model.SafeUser, 0, len(users))
	for i := range users {
		safe = append(safe, users[i].Safe())
	}
	return safe, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.SafeUser, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.SafeUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	safe := user.Safe()
	if payload, err := json.Marshal(safe); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return &safe, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, name string, role model.Role) (*model.SafeUser, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be ADMIN or USER", apperrors.ErrValidation)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.Name = name
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	safe := user.Safe()
	return &safe, nil
}
