// Package money handles the Brazilian-Real amount formats that appear in
// marketplace tables and invoice PDFs. Amounts are parsed into
// shopspring/decimal values and rendered back in the handful of textual forms
// the matcher probes for; go-money supplies the locale-grouped rendering.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BRL is the ISO-4217 code for the only currency this tool deals with.
const BRL = "BRL"

// ParseBRL parses a Brazilian-format amount string ("R$ 1.234,56", "150,00")
// into a decimal. Periods are grouping separators and are stripped; the comma
// is the decimal separator.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatComma renders with exactly two decimal digits and a comma separator,
// no grouping: 1234.5 -> "1234,50".
func FormatComma(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}

// FormatPeriod renders with exactly two decimal digits and a period
// separator: 1234.5 -> "1234.50".
func FormatPeriod(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatRawComma renders the decimal's shortest form with a comma separator:
// 1234.50 -> "1234,5", 150.00 -> "150".
func FormatRawComma(d decimal.Decimal) string {
	return strings.ReplaceAll(FormatRawPeriod(d), ".", ",")
}

// FormatRawPeriod renders the decimal's shortest form with a period
// separator: 1234.50 -> "1234.5", 150.00 -> "150".
func FormatRawPeriod(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

// FormatGrouped renders the Brazilian locale-grouped form without the
// currency symbol: 1234.56 -> "1.234,56".
func FormatGrouped(d decimal.Decimal) string {
	m := gomoney.New(toCents(d), BRL)
	out := m.Display()
	out = strings.ReplaceAll(out, gomoney.GetCurrency(BRL).Grapheme, "")
	return strings.TrimSpace(out)
}

// toCents converts a decimal amount to BRL minor units.
func toCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.New(1, 2)).Round(0).IntPart()
}
