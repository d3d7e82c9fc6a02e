package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders an amount stored in cents as US dollars with digit grouping, e.g. $1,250.00.
func Format(cents int64) string {
	if cents < 0 {
		return "-" + Format(-cents)
	}

	return printer.Sprintf("$%.2f", float64(cents)/100.0)
}
