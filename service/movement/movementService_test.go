package movementsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"bookstore/model"
	movementsvc "bookstore/service/movement"
)

type repoMock struct {
	getBookFn       func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	userExistsFn    func(ctx context.Context, tx *sql.Tx, userID int64) (bool, error)
	insertFn        func(ctx context.Context, tx *sql.Tx, m *model.Movement) error
	byIDForUpdateFn func(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error)
	updateStatusFn  func(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error
	listFn          func(ctx context.Context) ([]model.Movement, error)
}

var _ movementsvc.Repo = (*repoMock)(nil)

func (m *repoMock) GetBook(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
	return m.getBookFn(ctx, tx, bookID)
}

func (m *repoMock) UserExists(ctx context.Context, tx *sql.Tx, userID int64) (bool, error) {
	if m.userExistsFn == nil {
		return true, nil
	}
	return m.userExistsFn(ctx, tx, userID)
}

func (m *repoMock) Insert(ctx context.Context, tx *sql.Tx, mv *model.Movement) error {
	if m.insertFn == nil {
		mv.ID = 1
		return nil
	}
	return m.insertFn(ctx, tx, mv)
}

func (m *repoMock) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error) {
	return m.byIDForUpdateFn(ctx, tx, id)
}

func (m *repoMock) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error {
	return m.updateStatusFn(ctx, tx, id, status)
}

func (m *repoMock) List(ctx context.Context) ([]model.Movement, error) {
	return m.listFn(ctx)
}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreate_RentSetsReturnDate(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var inserted *model.Movement
	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Stock: 5}, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, m *model.Movement) error {
			m.ID = 7
			inserted = m
			return nil
		},
	}
	s := movementsvc.New(db, r)

	out, err := s.Create(context.Background(), 1, 1, model.MovementRent, 1)
	require.NoError(t, err)
	require.EqualValues(t, 7, out.MovementID)
	require.NotNil(t, out.ReturnDate)
	require.Equal(t, out.MovementDate.Add(7*24*time.Hour), *out.ReturnDate)

	require.NotNil(t, inserted)
	require.Equal(t, model.MovementPending, inserted.Status)
	require.EqualValues(t, 1, inserted.Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_PurchaseHasNoReturnDate(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Stock: 3}, nil
		},
	}
	s := movementsvc.New(db, r)

	out, err := s.Create(context.Background(), 1, 1, model.MovementPurchase, 2)
	require.NoError(t, err)
	require.Nil(t, out.ReturnDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_QuantityDefaultsToOne(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var inserted *model.Movement
	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Stock: 1}, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, m *model.Movement) error {
			inserted = m
			return nil
		},
	}
	s := movementsvc.New(db, r)

	_, err := s.Create(context.Background(), 1, 1, model.MovementReturn, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, inserted.Quantity)
}

func TestCreate_BookNotFoundFailsBeforeInsert(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return nil, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, m *model.Movement) error {
			t.Fatal("insert must not be called")
			return nil
		},
	}
	s := movementsvc.New(db, r)

	_, err := s.Create(context.Background(), 1, 99, model.MovementRent, 1)
	require.Equal(t, movementsvc.ErrBookNotFound, movementsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UserNotFound(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Stock: 5}, nil
		},
		userExistsFn: func(ctx context.Context, tx *sql.Tx, userID int64) (bool, error) {
			return false, nil
		},
	}
	s := movementsvc.New(db, r)

	_, err := s.Create(context.Background(), 404, 1, model.MovementRent, 1)
	require.Equal(t, movementsvc.ErrUserNotFound, movementsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InsufficientStock(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Stock: 1}, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, m *model.Movement) error {
			t.Fatal("insert must not be called")
			return nil
		},
	}
	s := movementsvc.New(db, r)

	_, err := s.Create(context.Background(), 1, 1, model.MovementPurchase, 2)
	require.Equal(t, movementsvc.ErrInsufficientStock, movementsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidType(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &repoMock{
		getBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Stock: 5}, nil
		},
	}
	s := movementsvc.New(db, r)

	_, err := s.Create(context.Background(), 1, 1, model.MovementType("LOAN"), 1)
	require.Equal(t, movementsvc.ErrInvalidType, movementsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_InvalidLeavesRowUntouched(t *testing.T) {
	db, _ := newDB(t)

	r := &repoMock{
		updateStatusFn: func(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error {
			t.Fatal("update must not be called")
			return nil
		},
	}
	s := movementsvc.New(db, r)

	err := s.UpdateStatus(context.Background(), 1, model.MovementStatus("INVALID"))
	require.Equal(t, movementsvc.ErrInvalidStatus, movementsvc.Code(err))
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &repoMock{
		byIDForUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error) {
			return nil, nil
		},
	}
	s := movementsvc.New(db, r)

	err := s.UpdateStatus(context.Background(), 99, model.MovementCompleted)
	require.Equal(t, movementsvc.ErrNotFound, movementsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Success(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var gotStatus model.MovementStatus
	r := &repoMock{
		byIDForUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (*model.Movement, error) {
			return &model.Movement{ID: id, Status: model.MovementPending}, nil
		},
		updateStatusFn: func(ctx context.Context, tx *sql.Tx, id int64, status model.MovementStatus) error {
			gotStatus = status
			return nil
		},
	}
	s := movementsvc.New(db, r)

	require.NoError(t, s.UpdateStatus(context.Background(), 1, model.MovementCancelled))
	require.Equal(t, model.MovementCancelled, gotStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}
