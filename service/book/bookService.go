package booksvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"bookstore/model"
	bookrepo "bookstore/repository/book"
)

var (
	ErrISBNTaken    = errors.New("isbn already registered")
	ErrBookNotFound = errors.New("book not found")
)

type Service interface {
	Create(ctx context.Context, title, author, isbn string, price decimal.Decimal, stock int64) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type service struct{ br bookrepo.Repo }

func New(br bookrepo.Repo) Service { return &service{br: br} }

// Create carries no business validation; isbn uniqueness is enforced by
// storage and mapped to ErrISBNTaken.
func (s *service) Create(ctx context.Context, title, author, isbn string, price decimal.Decimal, stock int64) (int64, error) {
	b := &model.Book{
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Price:  price,
		Stock:  stock,
	}
	if err := s.br.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn") {
			return 0, ErrISBNTaken
		}
		return 0, err
	}
	return b.ID, nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	return s.br.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.br.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}
