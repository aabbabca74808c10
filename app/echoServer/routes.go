package echoServer

import (
	"github.com/labstack/echo/v4"

	"bookstore/app/echoServer/controller/book"
	"bookstore/app/echoServer/controller/movement"
	"bookstore/app/echoServer/controller/payment"
	"bookstore/app/echoServer/controller/user"
)

type C struct {
	User     *user.Controller
	Book     *book.Controller
	Movement *movement.Controller
	Payment  *payment.Controller
}

func Register(e *echo.Echo, c C) {
	// Books
	e.GET("/books", c.Book.List)
	e.POST("/books", c.Book.Create)

	// Users
	e.GET("/users", c.User.List)
	e.POST("/users", c.User.Create)
	e.GET("/users/:id", c.User.Detail)

	// Movements
	e.GET("/movements", c.Movement.List)
	e.POST("/movements", c.Movement.Create)
	e.PATCH("/movements/:id/status", c.Movement.UpdateStatus)
	e.GET("/movements/:id/payments", c.Movement.ListPayments)

	// Payments
	e.GET("/payments", c.Payment.List)
	e.POST("/payments", c.Payment.Create)
}
