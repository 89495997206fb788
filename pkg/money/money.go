// Package money formatea montos en rublos con las convenciones rusas
// (espacio como separador de miles y coma decimal).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Russian)

// Format devuelve el monto con dos decimales y el símbolo del rublo.
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f ₽", f)
}

// Amount igual que Format pero sin símbolo (columnas de tablas).
func Amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}
