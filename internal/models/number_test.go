package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{"100", "100", true},
		{"3.50", "3.5", true},
		{"  -12.25", "-12.25", true},
		{"12.5abc", "12.5", true},
		{".5", "0.5", true},
		{"1e3", "1000", true},
		{"7.", "7", true},
		{"1e-400", "0", true},
		{"1e400", "", false},
		{"-1e400", "", false},
		{"", "", false},
		{"abc", "", false},
		{"-", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseNumber(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, got.Value.Equal(decimal.RequireFromString(tt.want)), "got %s", got.Value)
			} else {
				assert.True(t, got.IsNaN())
				assert.Equal(t, "NaN", got.String())
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		valid bool
	}{
		{"175", 175, true},
		{"3.9", 3, true},
		{" +42pts", 42, true},
		{"-8", -8, true},
		{"", 0, false},
		{"pts", 0, false},
		{"9223372036854775807", 9223372036854775807, true},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseInteger(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestOutOfRangeNumbersMarshalNull(t *testing.T) {
	out, err := json.Marshal(struct {
		N Number  `json:"n"`
		I Integer `json:"i"`
	}{ParseNumber("1e400"), ParseInteger("99999999999999999999")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":null,"i":null}`, string(out))
}

func TestNumberJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Number  `json:"a"`
		B Number  `json:"b"`
		C Integer `json:"c"`
		D Integer `json:"d"`
	}{
		A: ParseNumber("3.50"),
		B: ParseNumber("oops"),
		C: ParseInteger("12"),
		D: ParseInteger(""),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3.5,"b":null,"c":12,"d":null}`, string(out))

	var back struct {
		A Number  `json:"a"`
		B Number  `json:"b"`
		C Integer `json:"c"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.A.Equal(ParseNumber("3.5")))
	assert.True(t, back.B.IsNaN())
	assert.Equal(t, int64(12), back.C.Value)
}

func TestNumberEqualIgnoresInvalid(t *testing.T) {
	assert.False(t, Number{}.Equal(Number{}))
	assert.True(t, ParseNumber("1.0").Equal(ParseNumber("1")))
}
