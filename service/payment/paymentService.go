package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"bookstore/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrMissingMovement  ErrCode = "MISSING_MOVEMENT"
	ErrMovementNotFound ErrCode = "MOVEMENT_NOT_FOUND"
	ErrInvalidMethod    ErrCode = "INVALID_METHOD"
	ErrInvalidStatus    ErrCode = "INVALID_STATUS"
	ErrMissingAmount    ErrCode = "MISSING_AMOUNT"
	ErrDuplicatePayment ErrCode = "DUPLICATE_PAYMENT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the error code, or "" for non-business errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	GetMovement(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error)
	GetBookPrice(ctx context.Context, tx *sql.Tx, bookID int64) (decimal.Decimal, error)
	Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error
	List(ctx context.Context) ([]model.Payment, error)
	ListByMovement(ctx context.Context, movementID int64) ([]model.Payment, error)
}

type Service interface {
	// Create registers a payment for a movement, deriving the amount for
	// purchases when the caller omits it.
	Create(ctx context.Context, movementID int64, amount *decimal.Decimal, method model.PaymentMethod, status model.PaymentStatus) (int64, error)

	List(ctx context.Context) ([]model.Payment, error)
	ListByMovement(ctx context.Context, movementID int64) ([]model.Payment, error)
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

func (s *service) Create(ctx context.Context, movementID int64, amount *decimal.Decimal, method model.PaymentMethod, status model.PaymentStatus) (_ int64, err error) {
	if movementID <= 0 {
		return 0, makeErr(ErrMissingMovement, "no movement id provided")
	}
	if !method.Valid() {
		return 0, makeErr(ErrInvalidMethod,
			fmt.Sprintf("invalid payment method %q, use: %s, %s, %s",
				method, model.PaymentCash, model.PaymentCard, model.PaymentTransfer))
	}
	if status == "" {
		status = model.PaymentPending
	}
	if !status.Valid() {
		return 0, makeErr(ErrInvalidStatus,
			fmt.Sprintf("invalid status %q, use: %s, %s, %s",
				status, model.PaymentPending, model.PaymentCompleted, model.PaymentCancelled))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.GetMovement(ctx, tx, movementID)
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, makeErr(ErrMovementNotFound, "movement does not exist")
	}

	amt, err := s.resolveAmount(ctx, tx, m, amount)
	if err != nil {
		return 0, err
	}

	p := &model.Payment{
		MovementID:  movementID,
		Amount:      amt,
		Method:      method,
		PaymentDate: time.Now().UTC(),
		Status:      status,
	}
	if err = s.r.Insert(ctx, tx, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(strings.ToLower(pgErr.ConstraintName), "movement") {
			err = makeErr(ErrDuplicatePayment, "movement already has a payment")
		}
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// resolveAmount keeps a caller-supplied amount untouched; for purchases
// without one it derives book price times movement quantity.
func (s *service) resolveAmount(ctx context.Context, tx *sql.Tx, m *model.Movement, amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount != nil {
		return *amount, nil
	}
	if m.Type != model.MovementPurchase {
		return decimal.Zero, makeErr(ErrMissingAmount, "amount is required for non-purchase movements")
	}
	price, err := s.r.GetBookPrice(ctx, tx, m.BookID)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(m.Quantity)), nil
}

func (s *service) List(ctx context.Context) ([]model.Payment, error) {
	return s.r.List(ctx)
}

func (s *service) ListByMovement(ctx context.Context, movementID int64) ([]model.Payment, error) {
	return s.r.ListByMovement(ctx, movementID)
}
