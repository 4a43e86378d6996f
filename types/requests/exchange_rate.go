package requests

type ExchangeRateRequest struct {
	Ccy       string `json:"ccy" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=from to"`
	Amount    string `json:"amount" validate:"required,decimal"`
}
