package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"finmov/internal/errors"
	"finmov/internal/model"
	"finmov/internal/service"
)

// MovementHandler handles the movement CRUD endpoints.
type MovementHandler struct {
	svc service.MovementService
}

// NewMovementHandler creates a movement handler.
func NewMovementHandler(svc service.MovementService) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// MovementUser is the joined owner projection: name only, never email or id.
type MovementUser struct {
	Name string `json:"name"`
}

// MovementResponse is the API shape of a movement with its owner's name.
type MovementResponse struct {
	ID      uuid.UUID          `json:"id"`
	Concept string             `json:"concept"`
	Amount  decimal.Decimal    `json:"amount"`
	Type    model.MovementType `json:"type"`
	Date    time.Time          `json:"date"`
	UserID  uuid.UUID          `json:"userId"`
	User    MovementUser       `json:"user"`
}

func toMovementResponse(m *model.Movement) MovementResponse {
	return MovementResponse{
		ID:      m.ID,
		Concept: m.Concept,
		Amount:  m.Amount,
		Type:    m.Type,
		Date:    m.Date,
		UserID:  m.UserID,
		User:    MovementUser{Name: m.User.Name},
	}
}

// CreateMovementRequest represents a movement creation request.
type CreateMovementRequest struct {
	Concept string             `json:"concept" validate:"required"`
	Amount  decimal.Decimal    `json:"amount"`
	Type    model.MovementType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Date    *time.Time         `json:"date,omitempty"`
	UserID  string             `json:"userId" validate:"required,uuid"`
}

// UpdateMovementRequest represents a movement update request.
type UpdateMovementRequest struct {
	Concept string             `json:"concept" validate:"required"`
	Amount  decimal.Decimal    `json:"amount"`
	Type    model.MovementType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Date    *time.Time         `json:"date,omitempty"`
}

// List godoc
// @Summary List all movements
// @Description All movements newest first with the owning user's name (any authenticated role)
// @Tags movements
// @Produce json
// @Success 200 {array} MovementResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *MovementHandler) List(c echo.Context) error {
	movements, err := h.svc.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, toMovementResponse(&movements[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create a movement
// @Description Record an income or expense movement (admin only)
// @Tags movements
// @Accept json
// @Produce json
// @Param request body CreateMovementRequest true "Movement data"
// @Success 201 {object} MovementResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /movements [post]
func (h *MovementHandler) Create(c echo.Context) error {
	var req CreateMovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	in := service.CreateMovementInput{
		Concept: req.Concept,
		Amount:  req.Amount,
		Type:    req.Type,
		UserID:  userID,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	movement, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toMovementResponse(movement))
}

// Update godoc
// @Summary Update a movement
// @Tags movements
// @Accept json
// @Produce json
// @Param id path string true "Movement ID"
// @Param request body UpdateMovementRequest true "Movement data"
// @Success 200 {object} MovementResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [put]
func (h *MovementHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateMovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateMovementInput{
		Concept: req.Concept,
		Amount:  req.Amount,
		Type:    req.Type,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	movement, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toMovementResponse(movement))
}

// Delete godoc
// @Summary Delete a movement
// @Description Hard delete, no audit trail (admin only)
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [delete]
func (h *MovementHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// jsonError maps a service error through the taxonomy to its JSON body.
func jsonError(c echo.Context, err error) error {
	he := errors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
