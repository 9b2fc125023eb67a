// Package models defines the in-memory spreadsheet model consumed by the
// rendering and streaming layers. The model is produced once by a parser
// and treated as read-only afterwards.
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// ValueKind discriminates the possible cell value types.
type ValueKind int

const (
	// KindNull is an empty cell value.
	KindNull ValueKind = iota
	// KindString is a plain text value.
	KindString
	// KindNumber is a numeric value (Excel stores all numbers as floats).
	KindNumber
	// KindBool is a boolean value.
	KindBool
	// KindDateTime is a date/time value.
	KindDateTime
	// KindRichText is an ordered list of styled text fragments.
	KindRichText
)

// Value is a tagged union over the cell value types. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	t    time.Time
	rich []RichTextFragment
}

// NullValue returns the empty cell value.
func NullValue() Value { return Value{} }

// StringValue wraps a plain string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps a float.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// DateTimeValue wraps a date/time.
func DateTimeValue(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// RichTextValue wraps an ordered list of styled fragments.
func RichTextValue(frags []RichTextFragment) Value {
	return Value{kind: KindRichText, rich: frags}
}

// Kind reports the value's discriminant.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is empty.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload. Valid only for KindNumber.
func (v Value) Num() float64 { return v.num }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Time returns the date/time payload. Valid only for KindDateTime.
func (v Value) Time() time.Time { return v.t }

// RichText returns the fragment payload. Valid only for KindRichText.
func (v Value) RichText() []RichTextFragment { return v.rich }

// String renders the raw, unformatted representation of the value. Rich
// text concatenates its fragment texts; null renders empty.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDateTime:
		return v.t.Format("2006-01-02 15:04:05")
	case KindRichText:
		var s string
		for _, f := range v.rich {
			s += f.Text
		}
		return s
	}
	return ""
}

// MarshalJSON encodes the value as its untyped payload.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Interface returns the payload as an untyped value for JSON export.
// Null becomes nil, rich text collapses to its concatenated text.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindDateTime:
		return v.t
	case KindRichText:
		return v.String()
	}
	return nil
}
