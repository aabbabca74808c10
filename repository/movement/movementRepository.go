// repository/movement/movementRepository.go
package movementrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
)

type Repo interface {
	// Lookups used while validating a draft movement. All run inside
	// the caller's transaction so the insert sees the same snapshot.
	GetBook(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	UserExists(ctx context.Context, tx *sql.Tx, userID int64) (bool, error)

	Insert(ctx context.Context, tx *sql.Tx, m *model.Movement) error
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error

	List(ctx context.Context) ([]model.Movement, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) GetBook(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
	const q = `
		SELECT id, title, author, isbn, price, stock, is_available
		FROM books
		WHERE id = $1`
	b := &model.Book{}
	err := tx.QueryRowContext(ctx, q, bookID).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.Stock, &b.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UserExists(ctx context.Context, tx *sql.Tx, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Movement) error {
	const q = `
		INSERT INTO movements (user_id, book_id, type, quantity, movement_date, return_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	return tx.QueryRowContext(ctx, q,
		m.UserID, m.BookID, m.Type, m.Quantity, m.MovementDate, m.ReturnDate, m.Status,
	).Scan(&m.ID)
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error) {
	const q = `
		SELECT id, user_id, book_id, type, quantity, movement_date, return_date, status
		FROM movements
		WHERE id = $1
		FOR UPDATE`
	m := &model.Movement{}
	err := tx.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.UserID, &m.BookID, &m.Type, &m.Quantity, &m.MovementDate, &m.ReturnDate, &m.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error {
	const q = `
		UPDATE movements
		SET status = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.Movement, error) {
	const q = `
		SELECT id, user_id, book_id, type, quantity, movement_date, return_date, status
		FROM movements
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movement
	for rows.Next() {
		var m model.Movement
		if err := rows.Scan(&m.ID, &m.UserID, &m.BookID, &m.Type, &m.Quantity, &m.MovementDate, &m.ReturnDate, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
