package process

import (
	"fmt"
	"strings"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
	"github.com/ruidferreira/nota-renamer/pkg/money"
)

// ProcessingResult is the outcome for a single PDF. It is created once per
// file per run and never mutated after being appended to the run's results.
type ProcessingResult struct {
	OriginalName string `csv:"arquivo_original"`
	NewName      string `csv:"arquivo_renomeado"`
	Matched      bool   `csv:"correspondido"`
	// Suggestion is the closest record description for unmatched files,
	// empty otherwise. Advisory only.
	Suggestion string `csv:"sugestao"`
}

// RenamedFileName derives the new filename for a matched record. Marketplace
// and unit are the externally supplied labels of the run.
func RenamedFileName(rec records.Record, marketplace, unit string) string {
	name := fmt.Sprintf("%s %s - %s - %s %s - %s.pdf",
		rec.DocumentType.Tag(),
		rec.Identifier,
		rec.Description,
		marketplace,
		unit,
		money.FormatComma(rec.Amount),
	)
	return sanitizeFilename(name)
}

// sanitizeFilename replaces path separators and other characters that are
// unsafe in filenames.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
