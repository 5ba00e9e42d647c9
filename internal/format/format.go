// Package format renders numbers for display in en-US form.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Target renders a price target as "$75,000". Missing and zero targets
// render as "TBD".
func Target(v *float64) string {
	if v == nil || *v == 0 {
		return "TBD"
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return "$" + p.Sprint(number.Decimal(*v, number.MaxFractionDigits(3)))
}

// Percent renders a 0-100 value as "65%".
func Percent(v float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + "%"
}
