package cli

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber formats v with precision decimals and thousand separators.
// Example: FormatNumber(18248.5, 2) returns "18,248.50".
func FormatNumber(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	formatted := strconv.FormatFloat(math.Abs(v), 'f', precision, 64)
	intPart, decimals, hasDecimals := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64; fall back to plain digits.
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	out := printer.Sprintf("%d", n)
	if hasDecimals {
		out += "." + decimals
	}
	if v < 0 && strings.Trim(formatted, "0.") != "" {
		out = "-" + out
	}
	return out
}

// FormatPercent formats an optional percentage, using "n/a" for unknown.
func FormatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return FormatNumber(*v, 1) + "%"
}
