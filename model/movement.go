// model/movement.go
package model

import "time"

type MovementType string

const (
	MovementRent     MovementType = "RENT"
	MovementPurchase MovementType = "PURCHASE"
	MovementReturn   MovementType = "RETURN"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementRent, MovementPurchase, MovementReturn:
		return true
	}
	return false
}

type MovementStatus string

const (
	MovementPending   MovementStatus = "PENDING"
	MovementCompleted MovementStatus = "COMPLETED"
	MovementCancelled MovementStatus = "CANCELLED"
)

func (s MovementStatus) Valid() bool {
	switch s {
	case MovementPending, MovementCompleted, MovementCancelled:
		return true
	}
	return false
}

type Movement struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"user_id"`
	BookID       int64          `json:"book_id"`
	Type         MovementType   `json:"type"`
	Quantity     int64          `json:"quantity"`
	MovementDate time.Time      `json:"movement_date"`
	ReturnDate   *time.Time     `json:"return_date,omitempty"`
	Status       MovementStatus `json:"status"`
}
