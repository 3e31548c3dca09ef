package quote

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Display formatting mirrors what the dashboard cards expect: pt-BR month
// labels, "R$" scaled amounts and two-decimal percentages, with "N/A" for
// anything the provider did not report.

// FormatPrice renders a price with two decimals. Nil (or NaN) stays nil so
// the JSON field serializes as null.
func FormatPrice(v *float64) *string {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', 2, 64)
	return &s
}

// FormatLargeNumber scales a monetary amount to billions/millions/thousands.
func FormatLargeNumber(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "N/A"
	}
	n := *v
	switch {
	case n >= 1e9:
		return fmt.Sprintf("R$ %.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("R$ %.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatPercentage renders a ratio (0.1234) as a percentage ("12.34%").
func FormatPercentage(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

var monthsPT = [...]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthPT returns the pt-BR abbreviation for a month.
func MonthPT(m time.Month) string {
	return monthsPT[int(m)-1]
}

// PeriodStart resolves a dashboard period selector (1d, 5d, 1mo, 3mo, 6mo,
// 1y, 2y, 5y, 10y, ytd, max) to the start of the historical window.
// Unknown values fall back to one year.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "1d":
		return now.AddDate(0, 0, -1)
	case "5d":
		return now.AddDate(0, 0, -5)
	case "1mo":
		return now.AddDate(0, -1, 0)
	case "3mo":
		return now.AddDate(0, -3, 0)
	case "6mo":
		return now.AddDate(0, -6, 0)
	case "1y":
		return now.AddDate(-1, 0, 0)
	case "2y":
		return now.AddDate(-2, 0, 0)
	case "5y":
		return now.AddDate(-5, 0, 0)
	case "10y":
		return now.AddDate(-10, 0, 0)
	case "ytd":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case "max":
		return time.Unix(0, 0).UTC()
	}
	return now.AddDate(-1, 0, 0)
}
