// Package main bookstore API.
//
// @title           Bookstore API
// @version         1.0
// @description     Bookstore management backend (users, books, movements, payments).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookstore/app/echoServer"
	bookctrl "bookstore/app/echoServer/controller/book"
	movementctrl "bookstore/app/echoServer/controller/movement"
	paymentctrl "bookstore/app/echoServer/controller/payment"
	userctrl "bookstore/app/echoServer/controller/user"
	"bookstore/app/echoServer/validation"
	"bookstore/config"
	bookrepo "bookstore/repository/book"
	movementrepo "bookstore/repository/movement"
	paymentrepo "bookstore/repository/payment"
	userrepo "bookstore/repository/user"
	booksvc "bookstore/service/book"
	movementsvc "bookstore/service/movement"
	paymentsvc "bookstore/service/payment"
	usersvc "bookstore/service/user"
	"bookstore/util/database"
)

func main() {

	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	// DB: *sql.DB over pgx, migrations applied on connect
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	mr := movementrepo.New(db)
	pr := paymentrepo.New(db)

	// services
	us := usersvc.New(ur)
	bs := booksvc.New(br)
	ms := movementsvc.New(db, mr)
	ps := paymentsvc.New(db, pr)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	movementC := &movementctrl.Controller{Svc: ms, Payments: ps, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:     userC,
		Book:     bookC,
		Movement: movementC,
		Payment:  paymentC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
