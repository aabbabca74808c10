package payment

type CreatePaymentReq struct {
	MovementID int64    `json:"movement_id" validate:"required,gt=0"`
	Amount     *float64 `json:"amount" validate:"omitempty,gte=0"`
	Method     string   `json:"method" validate:"required"`
	Status     string   `json:"status" validate:"omitempty"`
}
