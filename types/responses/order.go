package responses

import (
	"time"

	"github.com/2HgO/fixedfloat-go/fixedfloat"
)

// OrderResponseData is an exchange order snapshot with the lifecycle view
// derived from it.
type OrderResponseData struct {
	*fixedfloat.Order
	Phase           fixedfloat.Phase `json:"phase"`
	Terminal        bool             `json:"terminal"`
	AwaitingDeposit bool             `json:"awaiting_deposit"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
}

func NewOrderResponseData(order *fixedfloat.Order) *OrderResponseData {
	data := &OrderResponseData{
		Order:           order,
		Phase:           order.Phase(),
		Terminal:        order.Status.IsTerminal(),
		AwaitingDeposit: order.AwaitingDeposit(),
	}
	if data.AwaitingDeposit {
		deadline := order.ExpiresAt()
		data.Deadline = &deadline
	}
	return data
}
