package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "finmov/internal/errors"
	"finmov/internal/model"
)

func TestUserService_List_SafeFieldsOnly(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	repo.On("List", mock.Anything).Return([]model.User{
		{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin, PasswordHash: "secret-hash"},
		{ID: uuid.New(), Name: "Uma", Email: "uma@example.com", Role: model.RoleUser, PasswordHash: "secret-hash"},
	}, nil)

	users, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Ada", users[0].Name)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	// SafeUser has no password field at all; nothing secret to leak.
}

func TestUserService_Update(t *testing.T) {
	t.Run("invalid role rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		_, err := svc.Update(context.Background(), uuid.New(), "Ada", "SUPERADMIN")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("empty name rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		_, err := svc.Update(context.Background(), uuid.New(), "", model.RoleUser)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(context.Background(), id, "Ada", model.RoleAdmin)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("mutates only name and role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		existing := &model.User{
			ID:           uuid.New(),
			Name:         "Old Name",
			Email:        "keep@example.com",
			Role:         model.RoleUser,
			PasswordHash: "keep-hash",
		}
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "New Name" &&
				u.Role == model.RoleAdmin &&
				u.Email == "keep@example.com" &&
				u.PasswordHash == "keep-hash"
		})).Return(nil)

		got, err := svc.Update(context.Background(), existing.ID, "New Name", model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, "New Name", got.Name)
		assert.Equal(t, model.RoleAdmin, got.Role)
		repo.AssertExpectations(t)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Get(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("found", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		user := &model.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin}
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		got, err := svc.Get(context.Background(), user.ID)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, model.RoleAdmin, got.Role)
	})
}
