package fixedfloat

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	Type      OrderType `json:"type"`
	FromCcy   string    `json:"fromCcy"`
	ToCcy     string    `json:"toCcy"`
	Direction Direction `json:"direction"`
	Amount    string    `json:"amount"`
	ToAddress string    `json:"toAddress"`
	Tag       *string   `json:"tag,omitempty"`
	RefCode   *string   `json:"refcode,omitempty"`
	AffTax    *float64  `json:"afftax,omitempty"`
}

type orderDetailsRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Order is a full snapshot of an exchange order. Each refresh replaces the
// previous snapshot; nothing in it is mutated locally.
type Order struct {
	ID        string        `json:"id"`
	Type      OrderType     `json:"type"`
	Email     string        `json:"email"`
	Status    OrderStatus   `json:"status"`
	Time      OrderTime     `json:"time"`
	From      OrderCurrency `json:"from"`
	To        OrderCurrency `json:"to"`
	Back      BackCurrency  `json:"back"`
	Emergency Emergency     `json:"emergency"`
	// Token is required for every later lookup of this order.
	Token string `json:"token"`
}

// OrderTime holds unix timestamps in seconds; Left is seconds until
// Expiration.
type OrderTime struct {
	Reg        int64  `json:"reg"`
	Start      *int64 `json:"start,omitempty"`
	Finish     *int64 `json:"finish,omitempty"`
	Update     *int64 `json:"update,omitempty"`
	Expiration int64  `json:"expiration"`
	Left       int64  `json:"left"`
}

type OrderCurrency struct {
	Code             string       `json:"code"`
	Coin             string       `json:"coin"`
	Network          string       `json:"network"`
	Name             string       `json:"name"`
	Alias            string       `json:"alias,omitempty"`
	Amount           *string      `json:"amount,omitempty"`
	Address          *string      `json:"address,omitempty"`
	Tag              *string      `json:"tag,omitempty"`
	AddressMix       *string      `json:"addressMix,omitempty"`
	ReqConfirmations *Int         `json:"reqConfirmations,omitempty"`
	MaxConfirmations *Int         `json:"maxConfirmations,omitempty"`
	Tx               *Transaction `json:"tx,omitempty"`
}

func (c OrderCurrency) AmountDecimal() (decimal.NullDecimal, error) { return Decimal(c.Amount) }

// BackCurrency is the refund destination used when an emergency is resolved
// with a refund.
type BackCurrency struct {
	Code       string       `json:"code"`
	Coin       string       `json:"coin"`
	Network    string       `json:"network"`
	Name       string       `json:"name"`
	Alias      string       `json:"alias,omitempty"`
	Address    *string      `json:"address,omitempty"`
	Tag        *string      `json:"tag,omitempty"`
	AddressMix *string      `json:"addressMix,omitempty"`
	Tx         *Transaction `json:"tx,omitempty"`
}

// Transaction is an on-chain transfer. Every field is optional because the
// exchange reports transactions before they are fully known.
type Transaction struct {
	ID            *string `json:"id,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	Fee           *string `json:"fee,omitempty"`
	CcyFee        *string `json:"ccyfee,omitempty"`
	TimeReg       *int64  `json:"timeReg,omitempty"`
	TimeBlock     *int64  `json:"timeBlock,omitempty"`
	Confirmations *Int    `json:"confirmations,omitempty"`
}

type Emergency struct {
	Status []EmergencyChoice `json:"status"`
	Choice EmergencyChoice   `json:"choice"`
	Repeat Flag              `json:"repeat"`
}

// Resolved reports whether a resolution has been chosen.
func (e Emergency) Resolved() bool {
	return e.Choice != "" && e.Choice != ChoiceNone
}

// Offers reports whether choice is among the available resolutions.
func (e Emergency) Offers(choice EmergencyChoice) bool {
	for _, c := range e.Status {
		if c == choice {
			return true
		}
	}
	return false
}

// Phase derives the lifecycle position from the snapshot. A PENDING order
// whose deposit has fewer confirmations than required is CONFIRMING.
func (o *Order) Phase() Phase {
	switch o.Status {
	case StatusNew:
		return PhaseNew
	case StatusPending:
		if o.confirming() {
			return PhaseConfirming
		}
		return PhasePending
	case StatusExchange:
		return PhaseExchange
	case StatusWithdraw:
		return PhaseWithdraw
	case StatusDone:
		return PhaseDone
	case StatusExpired:
		return PhaseExpired
	case StatusEmergency:
		return PhaseEmergency
	default:
		return PhaseUnknown
	}
}

func (o *Order) confirming() bool {
	tx := o.From.Tx
	if tx == nil || tx.Confirmations == nil {
		return false
	}
	required := o.From.ReqConfirmations
	if required == nil {
		required = o.From.MaxConfirmations
	}
	return required != nil && *tx.Confirmations < *required
}

// AwaitingDeposit reports whether the exchange is still waiting for funds on
// the from leg.
func (o *Order) AwaitingDeposit() bool {
	return o.Status == StatusNew && o.From.Tx == nil
}

// ExpiresAt returns the deposit deadline.
func (o *Order) ExpiresAt() time.Time {
	return time.Unix(o.Time.Expiration, 0)
}

// Expired reports whether the deposit deadline has passed at now for an
// order still awaiting its deposit, or the exchange already expired it.
func (o *Order) Expired(now time.Time) bool {
	if o.Status == StatusExpired {
		return true
	}
	return o.Status == StatusNew && o.Time.Expiration > 0 && !now.Before(o.ExpiresAt())
}
