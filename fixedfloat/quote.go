package fixedfloat

import "github.com/shopspring/decimal"

type OrderType string

const (
	FixedOrder OrderType = "fixed"
	FloatOrder OrderType = "float"
)

// Direction selects which leg's amount is fixed: "from" fixes the deposit
// amount, "to" fixes the payout amount.
type Direction string

const (
	DirectionFrom Direction = "from"
	DirectionTo   Direction = "to"
)

type QuoteRequest struct {
	Type       OrderType `json:"type"`
	FromCcy    string    `json:"fromCcy"`
	ToCcy      string    `json:"toCcy"`
	Direction  Direction `json:"direction"`
	Amount     string    `json:"amount"`
	Currencies *bool     `json:"ccies,omitempty"`
	USD        *bool     `json:"usd,omitempty"`
	RefCode    *string   `json:"refcode,omitempty"`
	AffTax     *float64  `json:"afftax,omitempty"`
}

// Asset is one leg of a quote. Numeric values stay decimal strings.
type Asset struct {
	Code      string  `json:"code"`
	Network   string  `json:"network,omitempty"`
	Coin      string  `json:"coin,omitempty"`
	Amount    *string `json:"amount,omitempty"`
	Rate      *string `json:"rate,omitempty"`
	Precision *Int    `json:"precision,omitempty"`
	Min       *string `json:"min,omitempty"`
	Max       *string `json:"max,omitempty"`
	USD       *string `json:"usd,omitempty"`
	BTC       *string `json:"btc,omitempty"`
}

func (a Asset) AmountDecimal() (decimal.NullDecimal, error) { return Decimal(a.Amount) }
func (a Asset) RateDecimal() (decimal.NullDecimal, error)   { return Decimal(a.Rate) }

// InBounds reports whether the asset amount lies within [min, max]. Missing
// bounds are not checked.
func (a Asset) InBounds() (bool, error) {
	amount, err := Decimal(a.Amount)
	if err != nil || !amount.Valid {
		return false, err
	}
	lo, err := Decimal(a.Min)
	if err != nil {
		return false, err
	}
	hi, err := Decimal(a.Max)
	if err != nil {
		return false, err
	}
	if lo.Valid && amount.Decimal.LessThan(lo.Decimal) {
		return false, nil
	}
	if hi.Valid && amount.Decimal.GreaterThan(hi.Decimal) {
		return false, nil
	}
	return true, nil
}

type Quote struct {
	From       Asset                  `json:"from"`
	To         Asset                  `json:"to"`
	Errors     []string               `json:"errors"`
	Currencies []CurrencyAvailability `json:"ccies,omitempty"`
}
