// repository/payment/paymentRepository.go
package paymentrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"bookstore/model"
)

type Repo interface {
	GetMovement(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error)
	GetBookPrice(ctx context.Context, tx *sql.Tx, bookID int64) (decimal.Decimal, error)
	Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error

	List(ctx context.Context) ([]model.Payment, error)
	ListByMovement(ctx context.Context, movementID int64) ([]model.Payment, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) GetMovement(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error) {
	const q = `
		SELECT id, user_id, book_id, type, quantity, movement_date, return_date, status
		FROM movements
		WHERE id = $1`
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

func (r *repo) GetBookPrice(ctx context.Context, tx *sql.Tx, bookID int64) (decimal.Decimal, error) {
	const q = `
		SELECT price
		FROM books
		WHERE id = $1`
	var price decimal.Decimal
	err := tx.QueryRowContext(ctx, q, bookID).Scan(&price)
	return price, err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `
		INSERT INTO payments (movement_id, amount, method, payment_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return tx.QueryRowContext(ctx, q,
		p.MovementID, p.Amount, p.Method, p.PaymentDate, p.Status,
	).Scan(&p.ID)
}

func (r *repo) List(ctx context.Context) ([]model.Payment, error) {
	const q = `
		SELECT id, movement_id, amount, method, payment_date, status
		FROM payments
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *repo) ListByMovement(ctx context.Context, movementID int64) ([]model.Payment, error) {
	const q = `
		SELECT id, movement_id, amount, method, payment_date, status
		FROM payments
		WHERE movement_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, movementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func scanPayments(rows *sql.Rows) ([]model.Payment, error) {
	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.MovementID, &p.Amount, &p.Method, &p.PaymentDate, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
