package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Number accepts either a JSON number or a numeric string and keeps its text.
type Number struct {
	raw string
	set bool
}

func NewNumber(raw string) Number {
	return Number{raw: raw, set: raw != ""}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NewNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number: %w", err)
	}
	*n = NewNumber(num.String())
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

func (n Number) IsSet() bool {
	return n.set
}

func (n Number) String() string {
	return n.raw
}

func (n Number) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(n.raw)
}
