package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float is a lenient numeric field. It accepts a JSON number or a numeric
// string; null, empty strings and unparseable values leave it unset so the
// normalizer can substitute a default.
type Float struct {
	Value float64
	Set   bool
}

// F returns a set Float.
func F(v float64) Float {
	return Float{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	*f = Float{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		b = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*f = F(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Or returns the value, or def when unset.
func (f Float) Or(def float64) float64 {
	if f.Set {
		return f.Value
	}
	return def
}

// Positive returns the value when set and greater than zero, else def.
func (f Float) Positive(def float64) float64 {
	if f.Set && f.Value > 0 {
		return f.Value
	}
	return def
}

// Int is the integer counterpart of Float. Fractional values truncate.
type Int struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(b []byte) error {
	var f Float
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = Int{Value: int(f.Value), Set: f.Set}
	return nil
}

// Or returns the value, or def when unset.
func (i Int) Or(def int) int {
	if i.Set {
		return i.Value
	}
	return def
}

// Bool accepts true/false as JSON booleans or strings. Anything else is
// false.
type Bool bool

// UnmarshalJSON implements json.Unmarshaler.
func (v *Bool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	*v = Bool(strings.EqualFold(s, "true") || s == "1")
	return nil
}
