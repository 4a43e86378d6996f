package fixedfloat

type Currency struct {
	Code     string  `json:"code"`
	Coin     string  `json:"coin"`
	Network  string  `json:"network"`
	Name     string  `json:"name"`
	Recv     Flag    `json:"recv"`
	Send     Flag    `json:"send"`
	Tag      *string `json:"tag,omitempty"`
	Logo     string  `json:"logo,omitempty"`
	Color    string  `json:"color,omitempty"`
	Priority int     `json:"priority,omitempty"`
}

// RequiresTag reports whether deposits in this currency need a memo or
// destination tag.
func (c Currency) RequiresTag() bool {
	return c.Tag != nil && *c.Tag != ""
}

// CurrencyAvailability is the short currency entry attached to a quote when
// the currency list is requested.
type CurrencyAvailability struct {
	Code string `json:"code"`
	Recv Flag   `json:"recv"`
	Send Flag   `json:"send"`
}
