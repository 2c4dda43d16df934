package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
)

func TestExtractInvoiceInfo(t *testing.T) {
	t.Run("finds the labelled NFS-e number", func(t *testing.T) {
		info := ExtractInvoiceInfo("NOTA FISCAL DE SERVIÇOS ELETRÔNICA Nº 4567\nPrestador: ACME")

		assert.Equal(t, "4567", info.Identifier)
		assert.Equal(t, records.TypeInvoice, info.Type)
	})

	t.Run("prefers the higher-priority label", func(t *testing.T) {
		text := "Nota fiscal eletrônica 1111\nNúmero da Nota: 2222"

		info := ExtractInvoiceInfo(text)

		assert.Equal(t, "2222", info.Identifier)
	})

	t.Run("falls back to nota followed by digits", func(t *testing.T) {
		info := ExtractInvoiceInfo("referente à nota 98765 emitida em 2024")

		assert.Equal(t, "98765", info.Identifier)
	})

	t.Run("fallback requires at least four digits", func(t *testing.T) {
		info := ExtractInvoiceInfo("nota 123 emitida em 2024")

		assert.Empty(t, info.Identifier)
	})

	t.Run("detects debit notes with and without accents", func(t *testing.T) {
		assert.Equal(t, records.TypeDebitNote, ExtractInvoiceInfo("NOTA DE DÉBITO Nº 9999").Type)
		assert.Equal(t, records.TypeDebitNote, ExtractInvoiceInfo("nota de debito 9999").Type)
	})

	t.Run("defaults to invoice with no identifier", func(t *testing.T) {
		info := ExtractInvoiceInfo("texto sem nenhum numero de documento")

		assert.Empty(t, info.Identifier)
		assert.Equal(t, records.TypeInvoice, info.Type)
	})
}
