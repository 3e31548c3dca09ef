package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestFormatLargeNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "N/A", FormatLargeNumber(nil))
	assert.Equal(t, "R$ 1.5B", FormatLargeNumber(f(1.5e9)))
	assert.Equal(t, "R$ 23.4M", FormatLargeNumber(f(23.4e6)))
	assert.Equal(t, "12.0K", FormatLargeNumber(f(12000)))
	assert.Equal(t, "999", FormatLargeNumber(f(999)))
}

func TestFormatPercentage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "N/A", FormatPercentage(nil))
	assert.Equal(t, "12.34%", FormatPercentage(f(0.1234)))
	assert.Equal(t, "0.00%", FormatPercentage(f(0)))
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FormatPrice(nil))
	got := FormatPrice(f(31.456))
	require.NotNil(t, got)
	assert.Equal(t, "31.46", *got)
}

func TestMonthPT(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jan", MonthPT(time.January))
	assert.Equal(t, "Fev", MonthPT(time.February))
	assert.Equal(t, "Dez", MonthPT(time.December))
}

func TestPeriodStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -5), PeriodStart("5d", now))
	assert.Equal(t, now.AddDate(0, -6, 0), PeriodStart("6mo", now))
	assert.Equal(t, now.AddDate(-2, 0, 0), PeriodStart("2y", now))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), PeriodStart("ytd", now))
	assert.Equal(t, time.Unix(0, 0).UTC(), PeriodStart("max", now))
	// Unknown selectors fall back to one year.
	assert.Equal(t, now.AddDate(-1, 0, 0), PeriodStart("whatever", now))
}
