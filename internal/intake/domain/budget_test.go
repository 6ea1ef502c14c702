package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestNormalizeBudget_Under(t *testing.T) {
	spec := NormalizeBudget("Under $500")

	assert.Equal(t, BudgetEstimate, spec.Type)
	assert.Nil(t, spec.Min)
	require.NotNil(t, spec.Max)
	assert.Equal(t, 500, *spec.Max)
}

func TestNormalizeBudget_Over(t *testing.T) {
	spec := NormalizeBudget("Over $10,000")

	assert.Equal(t, BudgetEstimate, spec.Type)
	require.NotNil(t, spec.Min)
	assert.Equal(t, 10000, *spec.Min)
	assert.Nil(t, spec.Max)
}

func TestNormalizeBudget_Range(t *testing.T) {
	spec := NormalizeBudget("$1,000 - $2,500")

	assert.Equal(t, BudgetEstimate, spec.Type)
	require.NotNil(t, spec.Min)
	require.NotNil(t, spec.Max)
	assert.Equal(t, 1000, *spec.Min)
	assert.Equal(t, 2500, *spec.Max)
}

func TestNormalizeBudget_SingleNumber(t *testing.T) {
	spec := NormalizeBudget("$5,000")

	assert.Equal(t, BudgetFixed, spec.Type)
	require.NotNil(t, spec.Min)
	assert.Equal(t, 5000, *spec.Min)
	assert.Nil(t, spec.Max)
}

func TestNormalizeBudget_Cases(t *testing.T) {
	cases := []struct {
		name  string
		label string
		want  BudgetSpec
	}{
		{"empty label", "", BudgetSpec{Type: BudgetEstimate}},
		{"no amounts", "Not sure yet", BudgetSpec{Type: BudgetEstimate}},
		{"keyword is case-insensitive", "UNDER $500", BudgetSpec{Type: BudgetEstimate, Max: intPtr(500)}},
		{"plus suffix reads as fixed", "$25,000+", BudgetSpec{Type: BudgetFixed, Min: intPtr(25000)}},
		{"extra amounts are ignored", "$100 - $200 - $300", BudgetSpec{Type: BudgetEstimate, Min: intPtr(100), Max: intPtr(200)}},
		{"word over inside range label", "Over $2,000 - $4,000", BudgetSpec{Type: BudgetEstimate, Min: intPtr(2000)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeBudget(tc.label))
		})
	}
}

func TestNormalizeBudget_Idempotent(t *testing.T) {
	first := NormalizeBudget("$1,000 - $2,500")
	second := NormalizeBudget("$1,000 - $2,500")

	assert.Equal(t, first, second)
}
