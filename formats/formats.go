package formats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/nzai/nseq/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// NotAvailable rendered for missing or unusable values
	NotAvailable = "--"
	// ClockNotAvailable rendered when the update time is unknown
	ClockNotAvailable = "Not available"
	// Rupee currency sign
	Rupee = "₹"

	crore = 1e7
	lakh  = 1e5
)

var (
	// IST india standard time, no daylight saving
	IST = time.FixedZone("IST", 5*60*60+30*60)

	indian = message.NewPrinter(language.MustParse("en-IN"))
)

func unusable(value float64) bool {
	return math.IsNaN(value) || math.IsInf(value, 0)
}

// Price format a rupee amount with 2 decimals
func Price(value float64) string {
	if unusable(value) {
		return NotAvailable
	}

	return Rupee + strconv.FormatFloat(value, 'f', 2, 64)
}

// Range format a day range as low - high
func Range(low, high float64) string {
	return Price(low) + " - " + Price(high)
}

// Percent format a percentage with explicit sign, e.g. +5.26%
func Percent(percent float64) string {
	if unusable(percent) {
		return NotAvailable
	}

	return fmt.Sprintf("%+.2f%%", percent)
}

// Change format an absolute and percent change with the direction glyph, e.g. ▲ +₹5.00 (+5.26%)
func Change(change, percent float64) string {
	if unusable(change) {
		change = 0
	}

	if unusable(percent) {
		percent = 0
	}

	glyph, sign := "▲", "+"
	if change < 0 {
		glyph, sign = "▼", "-"
	}

	return fmt.Sprintf("%s %s%s%.2f (%s%.2f%%)", glyph, sign, Rupee, math.Abs(change), sign, math.Abs(percent))
}

// LargeNumber abbreviate crores and lakhs, group smaller numbers the indian way
func LargeNumber(value float64) string {
	if value == 0 || unusable(value) {
		return "0"
	}

	switch {
	case value >= crore:
		return fmt.Sprintf("%.2f Cr", value/crore)
	case value >= lakh:
		return fmt.Sprintf("%.2f L", value/lakh)
	default:
		return indian.Sprint(number.Decimal(value, number.MaxFractionDigits(3)))
	}
}

// Volume abbreviate a traded volume, e.g. 1.25Cr, 3.40L, 12.00K
func Volume(value *float64) string {
	if value == nil || *value == 0 || unusable(*value) {
		return NotAvailable
	}

	switch v := *value; {
	case v >= crore:
		return fmt.Sprintf("%.2fCr", v/crore)
	case v >= lakh:
		return fmt.Sprintf("%.2fL", v/lakh)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// MarketCap abbreviate a rupee amount in T/B/M/K tiers
func MarketCap(value *float64) string {
	if value == nil || unusable(*value) {
		return NotAvailable
	}

	switch v := *value; {
	case v >= 1e12:
		return fmt.Sprintf("%s%.2fT", Rupee, v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%s%.2fB", Rupee, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s%.2fM", Rupee, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s%.2fK", Rupee, v/1e3)
	default:
		return Rupee + strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Optional format an optional rupee amount
func Optional(value *float64) string {
	if value == nil {
		return NotAvailable
	}

	return Price(*value)
}

// Clock format a time of day in IST
func Clock(t time.Time) string {
	if t.IsZero() {
		return ClockNotAvailable
	}

	return t.In(IST).Format(constants.TimePattern)
}
