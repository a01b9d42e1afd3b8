package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ListSeparator joins list-valued columns in flat exports.
const ListSeparator = "|"

// dateLayout is the export format for release dates.
const dateLayout = "2006-01-02"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatNumber formats a float64 with the fewest digits that round-trip
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatList joins list values with ListSeparator
func formatList(values []string) string {
	return strings.Join(values, ListSeparator)
}

// formatDate formats a release date, leaving the zero time empty
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
