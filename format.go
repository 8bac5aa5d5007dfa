package reportpdf

import (
	"fmt"
	"strconv"
)

// unitLabel follows vehicle counts in the metrics table.
const unitLabel = "vehicles"

// FormatMillions renders a currency amount in millions with one decimal,
// e.g. 2450000 → "$2.5M".
func FormatMillions(v float64) string {
	return fmt.Sprintf("$%.1fM", v/1e6)
}

// FormatThousands renders a currency amount in thousands with no decimals,
// e.g. 24500 → "$24k". Exact halves round to the even neighbour.
func FormatThousands(v float64) string {
	return fmt.Sprintf("$%.0fk", v/1e3)
}

// FormatGrowth renders a percentage change with an explicit sign for
// non-negative values, e.g. 7.2 → "+7.2%", -3.4 → "-3.4%".
func FormatGrowth(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, v)
}

// FormatPercent renders a share with one decimal. Values are not clamped.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatNumber renders v with as many digits as needed and no exponent.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCount renders a number followed by a unit, e.g. "245 vehicles".
func FormatCount(v float64, unit string) string {
	return FormatNumber(v) + " " + unit
}
