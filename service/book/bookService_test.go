// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookstore/model"
	booksvc "bookstore/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	listFn   func(ctx context.Context) ([]model.Book, error)
	byIDFn   func(ctx context.Context, id int64) (*model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context) ([]model.Book, error)  { return m.listFn(ctx) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			require.Equal(t, "Clean Code", b.Title)
			require.True(t, b.Price.Equal(decimal.RequireFromString("29.99")))
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)

	id, err := s.Create(context.Background(), "Clean Code", "Robert C. Martin", "9780132350884",
		decimal.RequireFromString("29.99"), 5)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestCreate_DuplicateISBN(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "books_isbn_key",
			}
		},
	}
	s := booksvc.New(m)

	_, err := s.Create(context.Background(), "Clean Code", "Robert C. Martin", "9780132350884",
		decimal.RequireFromString("29.99"), 5)
	require.ErrorIs(t, err, booksvc.ErrISBNTaken)
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, nil },
	}
	s := booksvc.New(m)

	_, err := s.Detail(context.Background(), 99)
	require.ErrorIs(t, err, booksvc.ErrBookNotFound)
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			return []model.Book{{ID: 1}}, nil
		},
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id}, nil
		},
	}
	s := booksvc.New(m)

	books, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)

	b, err := s.Detail(context.Background(), 7)
	require.NoError(t, err)
	require.EqualValues(t, 7, b.ID)
}
