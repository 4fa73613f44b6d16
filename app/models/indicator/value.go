package indicator

import "encoding/json"

// Value is one observation of an indicator column. Valid is false while the
// rolling window has not seen enough history, so the leading positions of a
// windowed indicator marshal as null instead of a misleading number.
type Value struct {
	Float64 float64
	Valid   bool
}

// Defined returns a valid Value holding f.
func Defined(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// MarshalJSON writes the observation as a plain number, or null when the
// position is undefined.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float64)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value{Float64: f, Valid: true}
	return nil
}

// Series is an indicator column aligned 1:1 by position with the price
// series it was computed from.
type Series []Value

func undefined(n int) Series {
	return make(Series, n)
}
