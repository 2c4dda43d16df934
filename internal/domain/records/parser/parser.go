// Package parser turns raw table text (usually OCR output) into the run's
// reference records. Each marketplace lays the table out differently, so the
// line-classification rules are variant-specific; the shared shape is
// line-by-line classification followed by positional pairing.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
	"github.com/ruidferreira/nota-renamer/pkg/money"
)

var (
	bareNumberRe = regexp.MustCompile(`^\d+$`)
	longNumberRe = regexp.MustCompile(`^\d{7,9}$`)

	// Anchored amount line: optional R$ prefix, comma decimals, optional
	// period grouping. The capture keeps the numeric part only, so the
	// display form matches what a PDF repeats ("150,00", not "R$ 150,00").
	amountLineRe = regexp.MustCompile(`^(?:R\$\s*)?(\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2})$`)

	// Loose variant used by Magalu: the amount may sit anywhere in the line.
	amountLooseRe = regexp.MustCompile(`(?:R\$\s*)?(\d{1,3}(?:\.\d{3})+,\d{2}|\d+,\d{2})`)

	// Pure date-range lines like "12 de Janeiro - 15 de Fevereiro de 2024"
	// show up between Mercado Livre table sections and are not descriptions.
	dateRangeRe = regexp.MustCompile(`^\d{1,2}\s+de\s+[\p{L}]+\s*-\s*\d{1,2}\s+de\s+[\p{L}]+(?:\s+de\s+\d{4})?$`)
)

var mercadoLivreHeaders = map[string]struct{}{
	"número":    {},
	"numero":    {},
	"valor":     {},
	"descrição": {},
	"descricao": {},
	"data":      {},
	"detalhe":   {},
	"total":     {},
}

var shopeeHeaders = map[string]struct{}{
	"nº do pedido": {},
	"no do pedido": {},
	"pedido":       {},
	"valor":        {},
	"cidade":       {},
	"descrição":    {},
	"descricao":    {},
	"total":        {},
}

var shopeeCities = map[string]struct{}{
	"são paulo": {},
	"sao paulo": {},
	"cajamar":   {},
	"barueri":   {},
	"osasco":    {},
	"extrema":   {},
}

// magaluOrnaments are the bullet glyphs Magalu prepends to description lines.
const magaluOrnaments = "•●◦▪‣·*– "

type amountValue struct {
	value   decimal.Decimal
	display string
}

// Parse converts the table text into an ordered record set. It never fails:
// when the text yields no identifiers (where the variant requires them) or no
// amounts, the result is empty and the caller must abort the run.
func Parse(tableText string, v records.Variant) []records.Record {
	switch v {
	case records.VariantMercadoLivre:
		return parseMercadoLivre(tableText)
	case records.VariantShopee:
		return parseShopee(tableText)
	case records.VariantMagalu:
		return parseMagalu(tableText)
	}
	return nil
}

func parseMercadoLivre(text string) []records.Record {
	var (
		ids     []string
		amounts []amountValue
		descs   []string
	)

	sc := newLineScanner(text)
	for sc.more() {
		line := sc.next()
		switch {
		case isMercadoLivreHeader(line):
		case longNumberRe.MatchString(line):
			ids = append(ids, line)
		case amountLineRe.MatchString(line):
			if av, ok := parseAmountLine(line); ok {
				amounts = append(amounts, av)
			}
		case strings.Contains(line, "-"):
			desc := line
			if strings.HasSuffix(line, "-") {
				// A trailing hyphen means the description wrapped onto the
				// next line, unless that line is itself a header, number or
				// amount.
				if next, ok := sc.peek(); ok && !isMercadoLivreHeader(next) &&
					!longNumberRe.MatchString(next) && !amountLineRe.MatchString(next) {
					desc = line + " " + sc.next()
				}
			}
			if !dateRangeRe.MatchString(desc) && utf8.RuneCountInString(desc) > 5 {
				descs = append(descs, desc)
			}
		}
	}

	return pairRecords(ids, amounts, descs)
}

func parseShopee(text string) []records.Record {
	var (
		ids     []string
		amounts []amountValue
		descs   []string
	)

	sc := newLineScanner(text)
	for sc.more() {
		line := sc.next()
		lower := strings.ToLower(line)
		switch {
		case isShopeeHeader(lower):
		case bareNumberRe.MatchString(line):
			ids = append(ids, stripLeadingZeros(line))
		case amountLineRe.MatchString(line):
			if av, ok := parseAmountLine(line); ok {
				amounts = append(amounts, av)
			}
		default:
			if _, city := shopeeCities[lower]; city {
				continue
			}
			if utf8.RuneCountInString(line) > 3 {
				descs = append(descs, line)
			}
		}
	}

	return pairRecords(ids, amounts, descs)
}

func parseMagalu(text string) []records.Record {
	var (
		amounts []amountValue
		descs   []string
	)

	sc := newLineScanner(text)
	for sc.more() {
		line := sc.next()
		if m := amountLooseRe.FindStringSubmatch(line); m != nil {
			if d, err := money.ParseBRL(m[1]); err == nil && d.IsPositive() {
				amounts = append(amounts, amountValue{value: d, display: m[1]})
				continue
			}
		}
		stripped := strings.Trim(line, magaluOrnaments)
		if stripped == "" {
			continue
		}
		if utf8.RuneCountInString(stripped) > 2 {
			descs = append(descs, stripped)
		}
	}

	if len(amounts) == 0 {
		return nil
	}

	recs := make([]records.Record, 0, len(amounts))
	for i, av := range amounts {
		recs = append(recs, records.Record{
			Amount:        av.value,
			AmountDisplay: av.display,
			Description:   descriptionAt(descs, i),
		})
	}
	return recs
}

// pairRecords aligns identifiers with amounts by position. The alignment is
// best-effort: OCR dropping or reordering a line shifts everything after it,
// and there is no content-based signal to correct that.
func pairRecords(ids []string, amounts []amountValue, descs []string) []records.Record {
	if len(ids) == 0 || len(amounts) == 0 {
		return nil
	}

	n := len(ids)
	if len(amounts) < n {
		n = len(amounts)
	}

	recs := make([]records.Record, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, records.Record{
			Identifier:    ids[i],
			Amount:        amounts[i].value,
			AmountDisplay: amounts[i].display,
			Description:   descriptionAt(descs, i),
		})
	}
	return recs
}

func descriptionAt(descs []string, i int) string {
	if i < len(descs) {
		return descs[i]
	}
	return records.PlaceholderDescription
}

func parseAmountLine(line string) (amountValue, bool) {
	m := amountLineRe.FindStringSubmatch(line)
	if m == nil {
		return amountValue{}, false
	}
	d, err := money.ParseBRL(m[1])
	if err != nil {
		return amountValue{}, false
	}
	return amountValue{value: d, display: m[1]}, true
}

func isMercadoLivreHeader(line string) bool {
	_, ok := mercadoLivreHeaders[strings.ToLower(line)]
	return ok
}

func isShopeeHeader(lower string) bool {
	_, ok := shopeeHeaders[lower]
	return ok
}

func stripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
