// Package records defines the reference-table model shared by the parser and
// the matcher: one Record per table row, plus the marketplace variant and the
// document-type tag that drive variant-specific behavior.
package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Variant identifies the marketplace layout family of a processing run.
// It selects both the table-parsing rules and the matching algorithm.
type Variant string

const (
	VariantMercadoLivre Variant = "mercadolivre"
	VariantShopee       Variant = "shopee"
	VariantMagalu       Variant = "magalu"
)

// ParseVariant maps a user-supplied label to a Variant. It accepts the
// canonical names and a few common aliases; ok is false for anything else.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mercadolivre", "mercado-livre", "ml":
		return VariantMercadoLivre, true
	case "shopee":
		return VariantShopee, true
	case "magalu", "magazineluiza":
		return VariantMagalu, true
	}
	return "", false
}

// DocumentType tags a record as a regular invoice or a debit note.
type DocumentType int

const (
	// TypeUnset means the document type could not be resolved yet.
	TypeUnset DocumentType = iota
	TypeInvoice
	TypeDebitNote
)

// Tag returns the short label used in renamed filenames. Unset types fall
// back to the invoice tag.
func (t DocumentType) Tag() string {
	if t == TypeDebitNote {
		return "ND"
	}
	return "NF"
}

func (t DocumentType) String() string {
	switch t {
	case TypeInvoice:
		return "invoice"
	case TypeDebitNote:
		return "debit_note"
	}
	return "unset"
}

// PlaceholderDescription is assigned when the table yields fewer description
// lines than records.
const PlaceholderDescription = "Sem descrição"

// PlaceholderIdentifier is assigned to Magalu records whose invoice number
// cannot be extracted from the PDF text.
const PlaceholderIdentifier = "XXXX"

// Record is one parsed reference-table row. Identifier is empty for Magalu
// rows until the matcher resolves it from the PDF itself. AmountDisplay keeps
// the amount exactly as it appeared in the table text ("1.234,56"), since the
// PDF may repeat that form verbatim.
type Record struct {
	Identifier    string
	Amount        decimal.Decimal
	AmountDisplay string
	Description   string
	DocumentType  DocumentType
}
