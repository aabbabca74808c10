package payment

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bookstore/model"
	paymentsvc "bookstore/service/payment"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /payments
func (h *Controller) Create(c echo.Context) error {
	var req CreatePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	var amount *decimal.Decimal
	if req.Amount != nil {
		a := decimal.NewFromFloat(*req.Amount).Round(2)
		amount = &a
	}

	id, err := h.Svc.Create(c.Request().Context(), req.MovementID, amount,
		model.PaymentMethod(req.Method), model.PaymentStatus(req.Status))
	if err != nil {
		if paymentsvc.Code(err) != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("payment create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "payment registered",
		"id":      id,
	})
}

// GET /payments
func (h *Controller) List(c echo.Context) error {
	payments, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("payment list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]echo.Map, 0, len(payments))
	for _, p := range payments {
		out = append(out, echo.Map{
			"id":           p.ID,
			"movement":     p.MovementID,
			"amount":       p.Amount.InexactFloat64(),
			"method":       p.Method,
			"payment_date": p.PaymentDate.Format(time.RFC3339),
			"status":       p.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}
