// Package match locates the reference record that an invoice PDF belongs to.
// It holds the invoice-number extractor and the matching algorithms, which
// are variant-specific: Magalu resolves identifiers from the PDF itself,
// the other marketplaces run a cascade of strategies over the record set.
package match

import (
	"regexp"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
)

// InvoiceInfo is what can be read off a PDF's text without any reference
// record: the document number (possibly empty) and the document type.
type InvoiceInfo struct {
	Identifier string
	Type       records.DocumentType
}

var debitNoteRe = regexp.MustCompile(`(?i)nota\s+de\s+d[ée]bito`)

// numberPatterns are tried in priority order. Each anchors the number to a
// specific label phrase; OCR noise between label and number is tolerated up
// to a short non-digit gap.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)n[úu]mero\s+da\s+nota[^0-9]{0,10}(\d+)`),
	regexp.MustCompile(`(?i)n[úu]mero\s+da\s+nfs-?e[^0-9]{0,10}(\d+)`),
	regexp.MustCompile(`(?i)nfs-?e\s+n[ºo°.]?\s*(\d+)`),
	regexp.MustCompile(`(?i)nota\s+fiscal\s+(?:de\s+servi[çc]os?\s+)?eletr[ôo]nica[^0-9]{0,20}(\d+)`),
	regexp.MustCompile(`(?i)nota\s+de\s+d[ée]bito[^0-9]{0,20}(\d{4,})`),
}

// lastResortNumberRe catches the word "nota" followed by 4+ digits anywhere
// in the text when none of the labelled patterns hit.
var lastResortNumberRe = regexp.MustCompile(`(?i)nota[^0-9]{0,40}?(\d{4,})`)

// ExtractInvoiceInfo scans a PDF's raw text for the document number and type.
// The identifier is empty when no pattern matches; the type is always set,
// defaulting to a regular invoice.
func ExtractInvoiceInfo(pdfText string) InvoiceInfo {
	info := InvoiceInfo{Type: records.TypeInvoice}
	if debitNoteRe.MatchString(pdfText) {
		info.Type = records.TypeDebitNote
	}

	for _, re := range numberPatterns {
		if m := re.FindStringSubmatch(pdfText); m != nil {
			info.Identifier = m[1]
			return info
		}
	}
	if m := lastResortNumberRe.FindStringSubmatch(pdfText); m != nil {
		info.Identifier = m[1]
	}
	return info
}
