package movement

type CreateMovementReq struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	BookID   int64  `json:"book_id" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required"`
	Quantity int64  `json:"quantity" validate:"omitempty,gt=0"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}
