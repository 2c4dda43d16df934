package match

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
	"github.com/ruidferreira/nota-renamer/pkg/money"
)

var (
	fileNumberRe = regexp.MustCompile(`\d{7,9}`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Match selects at most one record for the given PDF text. The returned
// record is a copy; for Magalu it carries the identifier and document type
// resolved from the PDF. A nil result means the file stays unmatched, which
// is a normal outcome.
func Match(pdfText string, recs []records.Record, fileName string, v records.Variant) *records.Record {
	if v == records.VariantMagalu {
		return matchMagalu(pdfText, recs)
	}
	return matchCascade(pdfText, recs, fileName)
}

// matchMagalu probes the PDF for each record's amount rendered in every
// plausible textual form. Magalu records carry no identifier from the table,
// so the winning record is completed from the PDF text itself.
func matchMagalu(pdfText string, recs []records.Record) *records.Record {
	normText := stripAllWhitespace(strings.ToUpper(pdfText))
	if normText == "" {
		return nil
	}

	for i := range recs {
		for _, cand := range magaluCandidates(recs[i]) {
			cand = stripAllWhitespace(strings.ToUpper(cand))
			if cand == "" || !strings.Contains(normText, cand) {
				continue
			}

			matched := recs[i]
			info := ExtractInvoiceInfo(pdfText)
			matched.Identifier = info.Identifier
			if matched.Identifier == "" {
				matched.Identifier = records.PlaceholderIdentifier
			}
			matched.DocumentType = info.Type
			return &matched
		}
	}
	return nil
}

// magaluCandidates builds the 8 prefix/separator/precision combinations plus
// the verbatim display string captured from the table.
func magaluCandidates(r records.Record) []string {
	base := []string{
		money.FormatComma(r.Amount),
		money.FormatPeriod(r.Amount),
		money.FormatRawComma(r.Amount),
		money.FormatRawPeriod(r.Amount),
	}
	cands := make([]string, 0, len(base)*2+1)
	for _, b := range base {
		cands = append(cands, b, "R$"+b)
	}
	return append(cands, r.AmountDisplay)
}

// matchCascade runs the ordered strategy list for Mercado Livre and Shopee:
// filename, identifier+amount, amount-only, identifier-only. The pairing of
// identifier and amount is the strongest evidence, so it outranks either
// field alone; the single-field strategies stay in because OCR frequently
// corrupts one of the two.
func matchCascade(pdfText string, recs []records.Record, fileName string) *records.Record {
	// 1. Identifiers embedded in the uploaded filename.
	for _, num := range fileNumberRe.FindAllString(fileName, -1) {
		for i := range recs {
			if recs[i].Identifier == num {
				matched := recs[i]
				return &matched
			}
		}
	}

	normText := normalizeSpace(strings.ToUpper(pdfText))
	foundIDs := identifiersIn(normText, recs)

	// 2. Identifier present and one of its amount renderings present.
	for i := range recs {
		if recs[i].Identifier == "" || !foundIDs[recs[i].Identifier] {
			continue
		}
		if amountIn(normText, recs[i]) {
			matched := recs[i]
			return &matched
		}
	}

	// 3. Amount alone.
	for i := range recs {
		if amountIn(normText, recs[i]) {
			matched := recs[i]
			return &matched
		}
	}

	// 4. Identifier alone.
	for i := range recs {
		if recs[i].Identifier != "" && foundIDs[recs[i].Identifier] {
			matched := recs[i]
			return &matched
		}
	}

	return nil
}

// identifiersIn reports which record identifiers occur as substrings of the
// normalized text. All identifiers are scanned in a single Aho-Corasick pass;
// record order is applied by the callers, not here.
func identifiersIn(normText string, recs []records.Record) map[string]bool {
	found := make(map[string]bool)
	if normText == "" {
		return found
	}

	seen := make(map[string]struct{}, len(recs))
	patterns := make([][]byte, 0, len(recs))
	for i := range recs {
		id := recs[i].Identifier
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		patterns = append(patterns, []byte(id))
	}
	if len(patterns) == 0 {
		return found
	}

	m := ahocorasick.NewMatcher(patterns)
	for _, hit := range m.Match([]byte(normText)) {
		found[string(patterns[hit])] = true
	}
	return found
}

// amountIn tests the fixed set of amount renderings against the normalized
// text. Renderings are whitespace-stripped because OCR splits numbers
// unpredictably around the currency symbol.
func amountIn(normText string, r records.Record) bool {
	forms := []string{
		r.AmountDisplay,
		money.FormatComma(r.Amount),
		money.FormatGrouped(r.Amount),
		money.FormatRawComma(r.Amount),
		money.FormatPeriod(r.Amount),
	}
	for _, f := range forms {
		f = stripAllWhitespace(strings.ToUpper(f))
		if f != "" && strings.Contains(normText, f) {
			return true
		}
	}
	return false
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func stripAllWhitespace(s string) string {
	return spaceRe.ReplaceAllString(s, "")
}
