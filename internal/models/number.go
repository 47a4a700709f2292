package models

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// leading numeric prefix accepted by a browser's parseFloat
	floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	// leading integer prefix accepted by parseInt
	intPrefix = regexp.MustCompile(`^[+-]?\d+`)
)

var jsonNull = []byte("null")

// Number is a decimal form value. An input that does not parse is kept as
// an invalid Number (the NaN of the form) and is sent as JSON null.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

// NewNumber returns a valid Number.
func NewNumber(d decimal.Decimal) Number {
	return Number{Value: d, Valid: true}
}

// ParseNumber reads the longest numeric prefix of s after leading
// whitespace. "12.5abc" is 12.5; "" and "abc" are invalid. Values beyond
// float64 range are invalid (a browser gets Infinity, sent as null) and
// values too small for float64 are zero.
func ParseNumber(s string) Number {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return Number{}
	}
	// "7." and "7.e2" are numbers to parseFloat but not to decimal
	m = strings.NewReplacer(".e", "e", ".E", "E").Replace(strings.TrimSuffix(m, "."))
	d, err := decimal.NewFromString(m)
	if err != nil {
		return Number{}
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return Number{}
	}
	if f == 0 {
		d = decimal.Zero
	}
	return NewNumber(d)
}

// IsNaN reports whether the input did not parse.
func (n Number) IsNaN() bool {
	return !n.Valid
}

// Equal compares two numbers; invalid numbers never compare equal.
func (n Number) Equal(o Number) bool {
	return n.Valid && o.Valid && n.Value.Equal(o.Value)
}

func (n Number) String() string {
	if !n.Valid {
		return "NaN"
	}
	return n.Value.String()
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return []byte(n.Value.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*n = Number{}
		return nil
	}
	d, err := decimal.NewFromString(strings.Trim(string(data), `"`))
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = NewNumber(d)
	return nil
}

// Integer is a whole-number form value with the same invalid semantics as
// Number.
type Integer struct {
	Value int64
	Valid bool
}

// NewInteger returns a valid Integer.
func NewInteger(v int64) Integer {
	return Integer{Value: v, Valid: true}
}

// ParseInteger reads the leading integer of s, so "3.9" is 3 and "x" is
// invalid. Integers outside the int64 range are invalid too.
func ParseInteger(s string) Integer {
	m := intPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return Integer{}
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return Integer{}
	}
	return NewInteger(v)
}

// IsNaN reports whether the input did not parse.
func (i Integer) IsNaN() bool {
	return !i.Valid
}

func (i Integer) String() string {
	if !i.Valid {
		return "NaN"
	}
	return strconv.FormatInt(i.Value, 10)
}

func (i Integer) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return jsonNull, nil
	}
	return []byte(strconv.FormatInt(i.Value, 10)), nil
}

func (i *Integer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*i = Integer{}
		return nil
	}
	v, err := strconv.ParseInt(strings.Trim(string(data), `"`), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*i = NewInteger(v)
	return nil
}
