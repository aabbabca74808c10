package movementsvc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bookstore/model"
)

// validateDraft runs the full rule set over a completely built draft, in a
// fixed order, so no rule depends on which field happened to be set first.
func (s *service) validateDraft(ctx context.Context, tx *sql.Tx, m *model.Movement, book *model.Book, now time.Time) error {
	if err := validateType(m.Type); err != nil {
		return err
	}
	if err := validateStatus(m.Status); err != nil {
		return err
	}
	ok, err := s.r.UserExists(ctx, tx, m.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrUserNotFound, "user does not exist")
	}
	if err := validateReturnDate(m.ReturnDate, m.Type, now); err != nil {
		return err
	}
	return validateStock(book, m.Type, m.Quantity)
}

func validateType(t model.MovementType) error {
	if !t.Valid() {
		return makeErr(ErrInvalidType,
			fmt.Sprintf("invalid movement type %q, use: %s, %s, %s",
				t, model.MovementRent, model.MovementPurchase, model.MovementReturn))
	}
	return nil
}

func validateStatus(s model.MovementStatus) error {
	if !s.Valid() {
		return makeErr(ErrInvalidStatus,
			fmt.Sprintf("invalid status %q, use: %s, %s, %s",
				s, model.MovementPending, model.MovementCompleted, model.MovementCancelled))
	}
	return nil
}

func validateReturnDate(rd *time.Time, t model.MovementType, now time.Time) error {
	if rd == nil {
		return nil
	}
	switch t {
	case model.MovementRent:
		if !rd.After(now) {
			return makeErr(ErrInvalidReturnDate, "return date must be after the current date")
		}
	case model.MovementPurchase:
		return makeErr(ErrUnexpectedReturnDate, "a purchase must not have a return date")
	}
	return nil
}

func validateStock(book *model.Book, t model.MovementType, quantity int64) error {
	if t != model.MovementRent && t != model.MovementPurchase {
		return nil
	}
	if book.Stock < quantity {
		return makeErr(ErrInsufficientStock, "insufficient stock for this movement")
	}
	// TODO: stock is validated but never decremented; add the decrement
	// once product confirms movements should consume stock.
	return nil
}
