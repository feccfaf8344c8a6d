package catalog

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "₫"

// PriceFormatter renders integer amounts with locale grouping. It never
// rounds or rescales the amount.
type PriceFormatter struct {
	printer *message.Printer
}

// NewPriceFormatter builds a formatter for a BCP 47 tag. Unknown tags fall
// back to Vietnamese.
func NewPriceFormatter(locale string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Vietnamese
	}
	return &PriceFormatter{printer: message.NewPrinter(tag)}
}

// Number formats 16500 as "16.500" for vi.
func (f *PriceFormatter) Number(amount int64) string {
	return f.printer.Sprintf("%d", amount)
}

// Currency formats 16500 as "16.500 ₫" for vi.
func (f *PriceFormatter) Currency(amount int64) string {
	return f.Number(amount) + " " + currencySymbol
}

// PerUnit formats a unit price line such as "16.500 ₫/kg".
func (f *PriceFormatter) PerUnit(amount int64, unit string) string {
	if unit == "" {
		return f.Currency(amount)
	}
	return f.Currency(amount) + "/" + unit
}

// consistentPerMasterUnit checks price / conversion against the supplied
// per-master-unit value, allowing one unit of rounding.
func consistentPerMasterUnit(price int64, conversion float64, perMaster int64) bool {
	if conversion <= 0 {
		return false
	}
	return math.Abs(float64(price)/conversion-float64(perMaster)) <= 1
}
