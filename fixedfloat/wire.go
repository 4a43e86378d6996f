package fixedfloat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Flag is a boolean the exchange sends either as true/false, 0/1 or "0"/"1".
type Flag bool

func (f *Flag) UnmarshalJSON(input []byte) error {
	raw := string(bytes.Trim(input, `"`))
	switch raw {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", input)
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Int is an integer that may arrive as a JSON number or a quoted number.
type Int int64

func (i *Int) UnmarshalJSON(input []byte) error {
	raw := string(bytes.Trim(input, `"`))
	if raw == "" || raw == "null" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value %s", input)
	}
	*i = Int(v)
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(i))
}

// Decimal parses an optional wire amount. Absent amounts yield an invalid
// NullDecimal rather than zero.
func Decimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
