// model/book.go
package model

import "github.com/shopspring/decimal"

type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	IsAvailable bool            `json:"is_available"`
}
