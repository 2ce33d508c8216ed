package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var audPrinter = message.NewPrinter(language.MustParse("en-AU"))

// FormatAUD renders whole dollars with thousands separators, e.g. "A$15,000".
func FormatAUD(dollars int) string {
	return audPrinter.Sprintf("A$%d", dollars)
}
