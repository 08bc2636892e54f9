package handler

import (
	"log/slog"
	"net/http"

	"tally/internal/delivery/http/metrics"
	"tally/internal/delivery/http/response"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ArithmeticHandler serves the standalone arithmetic endpoints. They are
// stateless and unauthenticated: nothing is persisted and no account is
// required, unlike the /calculations resource.
type ArithmeticHandler struct {
	logger *slog.Logger
}

// NewArithmeticHandler is the constructor for ArithmeticHandler, injected by Fx.
func NewArithmeticHandler(logger *slog.Logger) *ArithmeticHandler {
	return &ArithmeticHandler{logger: logger}
}

// operationRequest carries the two operands of a standalone operation.
// Pointers keep an explicit zero distinguishable from a missing field.
type operationRequest struct {
	A *float64 `json:"a" validate:"required"`
	B *float64 `json:"b" validate:"required"`
}

// operationResponse carries the computed result.
type operationResponse struct {
	Result float64 `json:"result"`
}

// Add handles POST /add.
func (h *ArithmeticHandler) Add(c echo.Context) error {
	return h.operate(c, entity.CalculationTypeAdd)
}

// Subtract handles POST /subtract.
func (h *ArithmeticHandler) Subtract(c echo.Context) error {
	return h.operate(c, entity.CalculationTypeSub)
}

// Multiply handles POST /multiply.
func (h *ArithmeticHandler) Multiply(c echo.Context) error {
	return h.operate(c, entity.CalculationTypeMultiply)
}

// Divide handles POST /divide.
func (h *ArithmeticHandler) Divide(c echo.Context) error {
	return h.operate(c, entity.CalculationTypeDivide)
}

func (h *ArithmeticHandler) operate(c echo.Context, calcType entity.CalculationType) error {
	var req operationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid operation input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := calcType.Compute(*req.A, *req.B)
	if err != nil {
		if errors.Is(err, entity.ErrDivisionByZero) {
			metrics.CalculationRejectionsTotal.WithLabelValues("division_by_zero").Inc()

			return domainerrors.ErrDivisionByZero
		}

		return domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	metrics.ArithmeticOpsTotal.WithLabelValues(calcType.String()).Inc()

	return c.JSON(http.StatusOK, operationResponse{Result: result})
}
