package rounding

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		method   Method
		value    string
		expected string
	}{
		{"bankers rounds half to even down", Bankers, "2.345", "2.34"},
		{"bankers rounds half to even up", Bankers, "2.335", "2.34"},
		{"bankers leaves non-ties alone", Bankers, "2.346", "2.35"},
		{"half-up resolves ties upward", HalfUp, "2.345", "2.35"},
		{"half-up on negative ties", HalfUp, "-2.345", "-2.34"},
		{"half-down resolves ties downward", HalfDown, "2.345", "2.34"},
		{"half-down on negative ties", HalfDown, "-2.345", "-2.35"},
		{"half-away from zero positive", HalfAway, "2.345", "2.35"},
		{"half-away from zero negative", HalfAway, "-2.345", "-2.35"},
		{"half-toward zero positive", HalfToward, "2.345", "2.34"},
		{"half-toward zero negative", HalfToward, "-2.345", "-2.34"},
		{"half-toward leaves non-ties alone", HalfToward, "2.3451", "2.35"},
		{"up always away from zero", Up, "2.341", "2.35"},
		{"up on negative", Up, "-2.341", "-2.35"},
		{"down always toward zero", Down, "2.349", "2.34"},
		{"down on negative", Down, "-2.349", "-2.34"},
		{"already exact value unchanged", HalfUp, "2.34", "2.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Method: tt.method, Places: 2}
			got := cfg.Apply(decimal.RequireFromString(tt.value))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"Apply(%s) = %s, expected %s", tt.value, got, tt.expected)
		})
	}
}

func TestApplyPlaces(t *testing.T) {
	cfg := Config{Method: HalfAway, Places: 4}
	got := cfg.Apply(decimal.RequireFromString("0.123456"))
	assert.Equal(t, "0.1235", got.String())

	cfg = Config{Method: Down, Places: 0}
	got = cfg.Apply(decimal.RequireFromString("9.99"))
	assert.Equal(t, "9", got.String())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, HalfAway, cfg.Method)
	assert.Equal(t, int32(2), cfg.Places)
}

func TestParseMethod(t *testing.T) {
	for _, method := range Methods {
		parsed, err := ParseMethod(string(method))
		require.NoError(t, err)
		assert.Equal(t, method, parsed)
	}

	_, err := ParseMethod("stochastic")
	assert.Error(t, err)
}
