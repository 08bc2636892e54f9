package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tally/internal/delivery/http/metrics"
	"tally/internal/delivery/http/middleware"
	"tally/internal/delivery/http/response"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CalculationHandler holds dependencies for calculation-related handlers.
type CalculationHandler struct {
	uc     usecase.CalculationUsecase
	logger *slog.Logger
}

// NewCalculationHandler is the constructor for CalculationHandler, injected by Fx.
func NewCalculationHandler(uc usecase.CalculationUsecase, logger *slog.Logger) *CalculationHandler {
	return &CalculationHandler{uc: uc, logger: logger}
}

// calculationRequest is the payload for creating or replacing a calculation.
// Operands are pointers so that an explicit zero survives binding; a plain
// float64 could not tell `"b": 0` apart from a missing field.
type calculationRequest struct {
	A    *float64 `json:"a"    validate:"required"`
	B    *float64 `json:"b"    validate:"required"`
	Type string   `json:"type" validate:"required,oneof=Add Sub Multiply Divide"`
}

// calculationResponse is the public view of a calculation.
type calculationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Type      string    `json:"type"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCalculationResponse(calc *entity.Calculation) calculationResponse {
	return calculationResponse{
		ID:        calc.ID.String(),
		UserID:    calc.OwnerID.String(),
		A:         calc.A,
		B:         calc.B,
		Type:      calc.Type.String(),
		Result:    calc.Result,
		CreatedAt: calc.CreatedAt,
		UpdatedAt: calc.UpdatedAt,
	}
}

// countRejection records validation failures that never reached the database.
func countRejection(err error) {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return
	}

	switch appErr.ErrorCode() {
	case "DIVISION_BY_ZERO":
		metrics.CalculationRejectionsTotal.WithLabelValues("division_by_zero").Inc()
	case "INVALID_INPUT":
		metrics.CalculationRejectionsTotal.WithLabelValues("invalid_type").Inc()
	}
}

// Create handles POST /calculations.
func (h *CalculationHandler) Create(c echo.Context) error {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req calculationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid calculation input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	calcType, err := entity.ParseCalculationType(req.Type)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	calc, err := h.uc.Create(c.Request().Context(), current.ID, usecase.CalculationInput{
		A:    *req.A,
		B:    *req.B,
		Type: calcType,
	})
	if err != nil {
		countRejection(err)

		return errors.WithStack(err)
	}

	metrics.CalculationOpsTotal.WithLabelValues("create", calc.Type.String()).Inc()

	return c.JSON(http.StatusOK, toCalculationResponse(calc))
}

// List handles GET /calculations with optional skip and limit query parameters.
func (h *CalculationHandler) List(c echo.Context) error {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	skip, err := parseQueryInt(c, "skip", 0)
	if err != nil {
		return response.BadRequest(c, "skip must be a non-negative integer")
	}

	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return response.BadRequest(c, "limit must be a non-negative integer")
	}

	calcs, err := h.uc.List(c.Request().Context(), current.ID, usecase.ListCalculationsInput{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]calculationResponse, 0, len(calcs))
	for _, calc := range calcs {
		items = append(items, toCalculationResponse(calc))
	}

	metrics.CalculationOpsTotal.WithLabelValues("list", "").Inc()

	return c.JSON(http.StatusOK, items)
}

// Get handles GET /calculations/:id.
func (h *CalculationHandler) Get(c echo.Context) error {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	calcID, err := parseIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	calc, err := h.uc.Get(c.Request().Context(), current.ID, calcID)
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.CalculationOpsTotal.WithLabelValues("get", calc.Type.String()).Inc()

	return c.JSON(http.StatusOK, toCalculationResponse(calc))
}

// Update handles PUT /calculations/:id.
func (h *CalculationHandler) Update(c echo.Context) error {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	calcID, err := parseIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req calculationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid calculation input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	calcType, err := entity.ParseCalculationType(req.Type)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	calc, err := h.uc.Update(c.Request().Context(), current.ID, calcID, usecase.CalculationInput{
		A:    *req.A,
		B:    *req.B,
		Type: calcType,
	})
	if err != nil {
		countRejection(err)

		return errors.WithStack(err)
	}

	metrics.CalculationOpsTotal.WithLabelValues("update", calc.Type.String()).Inc()

	return c.JSON(http.StatusOK, toCalculationResponse(calc))
}

// Delete handles DELETE /calculations/:id.
func (h *CalculationHandler) Delete(c echo.Context) error {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	calcID, err := parseIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), current.ID, calcID); err != nil {
		return errors.WithStack(err)
	}

	metrics.CalculationOpsTotal.WithLabelValues("delete", "").Inc()

	return c.JSON(http.StatusOK, response.Message{Message: "Calculation deleted"})
}

// parseIDParam reads the :id path parameter. A malformed UUID cannot name any
// stored calculation, so it resolves to the same not-found error.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrCalculationNotFound
	}

	return calcID, nil
}

// parseQueryInt reads a non-negative integer query parameter with a default.
func parseQueryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.Errorf("invalid %s parameter", name)
	}

	return value, nil
}
