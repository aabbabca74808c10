package book

type CreateBookReq struct {
	Title  string  `json:"title" validate:"required"`
	Author string  `json:"author" validate:"required"`
	ISBN   string  `json:"isbn" validate:"required"`
	Price  float64 `json:"price" validate:"required,gte=0"`
	Stock  int64   `json:"stock" validate:"omitempty,gte=0"`
}
