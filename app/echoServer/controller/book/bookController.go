package book

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	booksvc "bookstore/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	price := decimal.NewFromFloat(req.Price).Round(2)
	id, err := h.Svc.Create(c.Request().Context(), req.Title, req.Author, req.ISBN, price, req.Stock)
	if err != nil {
		if errors.Is(err, booksvc.ErrISBNTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "book created",
		"id":      id,
	})
}

// GET /books
func (h *Controller) List(c echo.Context) error {
	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]echo.Map, 0, len(books))
	for _, b := range books {
		out = append(out, echo.Map{
			"id":     b.ID,
			"title":  b.Title,
			"price":  b.Price.InexactFloat64(),
			"author": b.Author,
		})
	}
	return c.JSON(http.StatusOK, out)
}
