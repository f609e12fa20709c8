// Package format renders amounts the way the calculator displays them
// (fr-FR grouping, euro amounts without cents).
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// Currency rounds to whole euros at display time only.
func Currency(v float64) string {
	return printer.Sprintf("%.0f €", v)
}

func Number(v int64) string {
	return printer.Sprintf("%d", v)
}

func Hours(v int64) string {
	return printer.Sprintf("%d h", v)
}

func Decimal(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.1f", v)
}
