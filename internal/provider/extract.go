package provider

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind classifies how a feed value was represented on the wire.
type Kind int

const (
	KindAbsent Kind = iota // field missing from the record
	KindNull
	KindNumber
	KindText
	KindOther // bool, object, or array
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// RawValue is a feed value: a number, text, null, or missing.
type RawValue struct {
	Kind   Kind
	Number float64
	Text   string
}

// Num builds a numeric RawValue.
func Num(f float64) RawValue { return RawValue{Kind: KindNumber, Number: f} }

// Str builds a text RawValue.
func Str(s string) RawValue { return RawValue{Kind: KindText, Text: s} }

// UnmarshalJSON classifies the JSON token instead of failing on type
// mismatches, so a single bad field never rejects the whole payload.
func (v *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = RawValue{Kind: KindNull}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Str(s)
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			*v = RawValue{Kind: KindOther, Text: string(b)}
			return nil
		}
		*v = Num(f)
	default:
		*v = RawValue{Kind: KindOther, Text: string(b)}
	}
	return nil
}

// MarshalJSON writes the value back in its original representation.
func (v RawValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Number)
	case KindText:
		return json.Marshal(v.Text)
	case KindOther:
		if json.Valid([]byte(v.Text)) {
			return []byte(v.Text), nil
		}
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

// Float extracts a finite numeric value. Numeric text ("12", " 0.250 ")
// counts; anything else reports ok=false.
func (v RawValue) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Number, !math.IsNaN(v.Number) && !math.IsInf(v.Number, 0)
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Count extracts a non-negative integer count.
func (v RawValue) Count() (int, bool) {
	f, ok := v.Float()
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// AsText extracts trimmed text.
func (v RawValue) AsText() (string, bool) {
	if v.Kind != KindText {
		return "", false
	}
	return strings.TrimSpace(v.Text), true
}
