package movement

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookstore/model"
	movementsvc "bookstore/service/movement"
	paymentsvc "bookstore/service/payment"
)

type Controller struct {
	Svc movementsvc.Service
	// Payments backs GET /movements/:id/payments.
	Payments paymentsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
}

// POST /movements
func (h *Controller) Create(c echo.Context) error {
	var req CreateMovementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Create(c.Request().Context(), req.UserID, req.BookID, model.MovementType(req.Type), req.Quantity)
	if err != nil {
		if movementsvc.Code(err) != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("movement create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	var returnDate any
	if out.ReturnDate != nil {
		returnDate = out.ReturnDate.Format(time.RFC3339)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "movement created",
		"movement_date": out.MovementDate.Format(time.RFC3339),
		"return_date":   returnDate,
	})
}

// PATCH /movements/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	if err := h.Svc.UpdateStatus(c.Request().Context(), id, model.MovementStatus(req.Status)); err != nil {
		switch movementsvc.Code(err) {
		case movementsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "movement not found"})
		case movementsvc.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("movement status update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// GET /movements
func (h *Controller) List(c echo.Context) error {
	movements, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("movement list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]echo.Map, 0, len(movements))
	for _, m := range movements {
		var movementDate any
		if !m.MovementDate.IsZero() {
			movementDate = m.MovementDate.Format(time.RFC3339)
		}
		out = append(out, echo.Map{
			"id":            m.ID,
			"user_id":       m.UserID,
			"book_id":       m.BookID,
			"type":          m.Type,
			"status":        m.Status,
			"movement_date": movementDate,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /movements/:id/payments
func (h *Controller) ListPayments(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	payments, err := h.Payments.ListByMovement(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("movement payments", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]echo.Map, 0, len(payments))
	for _, p := range payments {
		out = append(out, echo.Map{
			"id":     p.ID,
			"amount": p.Amount.InexactFloat64(),
			"method": p.Method,
			"status": p.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}
