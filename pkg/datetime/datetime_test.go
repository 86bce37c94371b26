package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{"mid-month stays on its day", "2024-01-15", 1, "2024-02-15"},
		{"last day clamps to leap February", "2024-01-31", 1, "2024-02-29"},
		{"last day clamps to non-leap February", "2023-01-31", 1, "2023-02-28"},
		{"leap day extends to end of March", "2024-02-29", 1, "2024-03-31"},
		{"end of February extends to end of March", "2023-02-28", 1, "2023-03-31"},
		{"day overflow clamps instead of spilling", "2024-01-30", 1, "2024-02-29"},
		{"end of March to end of April", "2024-03-31", 1, "2024-04-30"},
		{"year rollover", "2024-11-15", 3, "2025-02-15"},
		{"negative offset", "2024-03-15", -1, "2024-02-15"},
		{"twelve months", "2024-02-29", 12, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(MustParseDate(tt.date), tt.months)
			assert.Equal(t, tt.expected, got.Format(DateLayout))
		})
	}
}

func TestNextPaymentDate(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		frequency Frequency
		expected  string
	}{
		{"weekly adds seven days", "2024-01-01", Weekly, "2024-01-08"},
		{"bi-weekly adds fourteen days", "2024-01-01", BiWeekly, "2024-01-15"},
		{"semi-monthly adds fifteen days", "2024-01-01", SemiMonthly, "2024-01-16"},
		{"monthly preserves end of month", "2024-01-31", Monthly, "2024-02-29"},
		{"quarterly", "2024-01-15", Quarterly, "2024-04-15"},
		{"semi-annually", "2024-01-15", SemiAnnually, "2024-07-15"},
		{"annually", "2024-02-29", Annually, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPaymentDate(MustParseDate(tt.date), tt.frequency)
			assert.Equal(t, tt.expected, got.Format(DateLayout))
		})
	}
}

func TestNumberOfPayments(t *testing.T) {
	tests := []struct {
		name       string
		termMonths int
		frequency  Frequency
		expected   int
	}{
		{"monthly is term itself", 360, Monthly, 360},
		{"bi-weekly doubles the month count", 12, BiWeekly, 24},
		{"weekly quadruples the month count", 12, Weekly, 48},
		{"semi-monthly doubles the month count", 12, SemiMonthly, 24},
		{"quarterly", 12, Quarterly, 4},
		{"semi-annually", 36, SemiAnnually, 6},
		{"annually", 120, Annually, 10},
		{"short term never drops below one payment", 3, Annually, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NumberOfPayments(tt.termMonths, tt.frequency))
		})
	}
}

func TestPeriodsPerYear(t *testing.T) {
	expected := map[Frequency]int{
		Weekly:       52,
		BiWeekly:     26,
		SemiMonthly:  24,
		Monthly:      12,
		Quarterly:    4,
		SemiAnnually: 2,
		Annually:     1,
	}
	for frequency, periods := range expected {
		assert.Equal(t, periods, PeriodsPerYear(frequency), "frequency %s", frequency)
	}
}

func TestParseFrequency(t *testing.T) {
	for _, frequency := range Frequencies {
		parsed, err := ParseFrequency(string(frequency))
		require.NoError(t, err)
		assert.Equal(t, frequency, parsed)
	}

	_, err := ParseFrequency("fortnightly")
	assert.Error(t, err)
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.May, 1, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, a.AddDate(0, 0, 1)))
}
