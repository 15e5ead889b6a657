// Package money formatea montos en pesos colombianos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// es usa los mismos separadores que es-CO (miles con punto).
var printer = message.NewPrinter(language.Spanish)

// FormatCOP formatea un monto redondeado a pesos con separador de miles: 27500 -> "$27.500".
func FormatCOP(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}
