package requests

type CreateOrderRequest struct {
	Ccy       string `json:"ccy" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=from to"`
	Amount    string `json:"amount" validate:"required,decimal"`
	ToAddress string `json:"toAddress" validate:"required"`
	// Tag is the memo/destination tag for currencies that need one.
	Tag *string `json:"tag,omitempty"`
}
