package match

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ruidferreira/nota-renamer/internal/domain/records"
)

// Suggest returns the description of the record whose tokens best
// fuzzy-match the PDF text, as a hint for files the cascade could not place.
// It is advisory only and never influences the match outcome. Empty string
// means nothing plausible was found.
func Suggest(pdfText string, recs []records.Record) string {
	words := strings.Fields(strings.ToUpper(pdfText))
	if len(words) == 0 {
		return ""
	}

	bestIdx, bestScore := -1, 0
	for i := range recs {
		score := 0
		for _, tok := range strings.Fields(strings.ToUpper(recs[i].Description)) {
			// Short tokens ("de", "da") match everything and carry no signal.
			if utf8.RuneCountInString(tok) < 4 {
				continue
			}
			if len(fuzzy.FindFold(tok, words)) > 0 {
				score++
			}
		}
		if score > bestScore {
			bestScore, bestIdx = score, i
		}
	}

	if bestIdx < 0 {
		return ""
	}
	return recs[bestIdx].Description
}
