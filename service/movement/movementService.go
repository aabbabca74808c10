package movementsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookstore/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound         ErrCode = "BOOK_NOT_FOUND"
	ErrUserNotFound         ErrCode = "USER_NOT_FOUND"
	ErrInvalidType          ErrCode = "INVALID_TYPE"
	ErrInvalidStatus        ErrCode = "INVALID_STATUS"
	ErrUnexpectedReturnDate ErrCode = "UNEXPECTED_RETURN_DATE"
	ErrInvalidReturnDate    ErrCode = "INVALID_RETURN_DATE"
	ErrInsufficientStock    ErrCode = "INSUFFICIENT_STOCK"
	ErrNotFound             ErrCode = "NOT_FOUND"
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

const rentalPeriod = 7 * 24 * time.Hour

// Created is what a successful movement creation reports back.
type Created struct {
	MovementID   int64
	MovementDate time.Time
	ReturnDate   *time.Time
}

type Repo interface {
	GetBook(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	UserExists(ctx context.Context, tx *sql.Tx, userID int64) (bool, error)
	Insert(ctx context.Context, tx *sql.Tx, m *model.Movement) error
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error
	List(ctx context.Context) ([]model.Movement, error)
}

type Service interface {
	// Create builds a draft movement, validates it as a whole, and
	// persists it in one transaction.
	Create(ctx context.Context, userID, bookID int64, typ model.MovementType, quantity int64) (*Created, error)

	// UpdateStatus overwrites the status of an existing movement.
	UpdateStatus(ctx context.Context, id int64, status model.MovementStatus) error

	List(ctx context.Context) ([]model.Movement, error)
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

func (s *service) Create(ctx context.Context, userID, bookID int64, typ model.MovementType, quantity int64) (_ *Created, err error) {
	if quantity <= 0 {
		quantity = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	book, err := s.r.GetBook(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, makeErr(ErrBookNotFound, "book does not exist")
	}

	now := time.Now().UTC()
	var returnDate *time.Time
	if typ == model.MovementRent {
		rd := now.Add(rentalPeriod)
		returnDate = &rd
	}

	draft := model.Movement{
		UserID:       userID,
		BookID:       bookID,
		Type:         typ,
		Quantity:     quantity,
		MovementDate: now,
		ReturnDate:   returnDate,
		Status:       model.MovementPending,
	}

	if err = s.validateDraft(ctx, tx, &draft, book, now); err != nil {
		return nil, err
	}

	if err = s.r.Insert(ctx, tx, &draft); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &Created{
		MovementID:   draft.ID,
		MovementDate: draft.MovementDate,
		ReturnDate:   draft.ReturnDate,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status model.MovementStatus) (err error) {
	if err := validateStatus(status); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.ByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return makeErr(ErrNotFound, "movement not found")
	}

	// COMPLETED and CANCELLED are terminal by convention only; any valid
	// status may overwrite the current one.
	if err = s.r.UpdateStatus(ctx, tx, id, status); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) List(ctx context.Context) ([]model.Movement, error) {
	return s.r.List(ctx)
}
