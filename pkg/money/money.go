// Package money holds COP price arithmetic and es-CO display formatting.
// Amounts are whole pesos.
package money

import (
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// ApplyDiscount reduces price by percentage and rounds half-up to whole pesos.
// Percentages outside (0, 100] leave the price unchanged.
func ApplyDiscount(price int64, percentage float64) int64 {
	if percentage <= 0 || percentage > 100 {
		return price
	}
	factor := hundred.Sub(decimal.NewFromFloat(percentage)).Div(hundred)
	return decimal.NewFromInt(price).Mul(factor).Round(0).IntPart()
}

// LineTotal returns quantity × unit.
func LineTotal(unit int64, quantity int) int64 {
	return decimal.NewFromInt(unit).Mul(decimal.NewFromInt(int64(quantity))).IntPart()
}

// Sum adds the supplied amounts.
func Sum(amounts ...int64) int64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromInt(a))
	}
	return total.IntPart()
}

// Savings returns original − price, floored at zero.
func Savings(original, price int64) int64 {
	if original <= price {
		return 0
	}
	return original - price
}

var (
	printerOnce sync.Once
	printer     *message.Printer
)

func copPrinter() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(language.MustParse("es-CO"))
	})
	return printer
}

// Format renders an amount the way Colombian shoppers read it, e.g. $25.000.
func Format(amount int64) string {
	if amount < 0 {
		return "-$" + copPrinter().Sprintf("%d", -amount)
	}
	return "$" + copPrinter().Sprintf("%d", amount)
}
