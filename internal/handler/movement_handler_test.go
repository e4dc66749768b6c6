package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "finmov/internal/errors"
	"finmov/internal/model"
	"finmov/internal/service"
)

// MockMovementService is a mock implementation of service.MovementService.
type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) List(ctx context.Context) ([]model.Movement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movement), args.Error(1)
}

func (m *MockMovementService) Create(ctx context.Context, in service.CreateMovementInput) (*model.Movement, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movement), args.Error(1)
}

func (m *MockMovementService) Update(ctx context.Context, id uuid.UUID, in service.UpdateMovementInput) (*model.Movement, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movement), args.Error(1)
}

func (m *MockMovementService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestMovementHandler_List(t *testing.T) {
	svc := new(MockMovementService)
	h := NewMovementHandler(svc)

	owner := model.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	svc.On("List", mock.Anything).Return([]model.Movement{
		{
			ID:      uuid.New(),
			Concept: "Consulting",
			Amount:  decimal.RequireFromString("99.50"),
			Type:    model.MovementIncome,
			Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UserID:  owner.ID,
			User:    owner,
		},
	}, nil)

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/movements", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 1)

	// Owner projection carries the name only, never the email.
	user, ok := body[0]["user"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Ada", user["name"])
	assert.NotContains(t, user, "email")
}

func TestMovementHandler_Create_RejectsBadType(t *testing.T) {
	svc := new(MockMovementService)
	h := NewMovementHandler(svc)

	payload := `{"concept":"rent","amount":"100.00","type":"TRANSFER","userId":"` + uuid.NewString() + `"}`
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestMovementHandler_Create_Success(t *testing.T) {
	svc := new(MockMovementService)
	h := NewMovementHandler(svc)

	owner := model.User{ID: uuid.New(), Name: "Ada"}
	created := &model.Movement{
		ID:      uuid.New(),
		Concept: "rent",
		Amount:  decimal.RequireFromString("100.00"),
		Type:    model.MovementExpense,
		Date:    time.Now().UTC(),
		UserID:  owner.ID,
		User:    owner,
	}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateMovementInput) bool {
		return in.Concept == "rent" && in.Type == model.MovementExpense && in.UserID == owner.ID
	})).Return(created, nil)

	payload := `{"concept":"rent","amount":"100.00","type":"EXPENSE","userId":"` + owner.ID.String() + `"}`
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestMovementHandler_Delete(t *testing.T) {
	t.Run("unknown id is a typed 404", func(t *testing.T) {
		svc := new(MockMovementService)
		h := NewMovementHandler(svc)

		id := uuid.New()
		svc.On("Delete", mock.Anything, id).Return(apperrors.ErrMovementNotFound)

		e := newEcho()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body apperrors.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "MOVEMENT_NOT_FOUND", body.Code)
	})

	t.Run("success returns the success flag", func(t *testing.T) {
		svc := new(MockMovementService)
		h := NewMovementHandler(svc)

		id := uuid.New()
		svc.On("Delete", mock.Anything, id).Return(nil)

		e := newEcho()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})
}
