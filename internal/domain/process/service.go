// Package process orchestrates a single renaming run: table OCR, record
// parsing, then strictly sequential per-PDF matching. PDFs are independent of
// each other; the record set is read-only once parsed.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ruidferreira/nota-renamer/internal/domain/match"
	"github.com/ruidferreira/nota-renamer/internal/domain/records"
	"github.com/ruidferreira/nota-renamer/internal/domain/records/parser"
	"github.com/ruidferreira/nota-renamer/internal/extract"
	"github.com/ruidferreira/nota-renamer/pkg/storage"
)

// ErrNoRecords means the table text yielded no usable reference data; the
// run aborts before touching any PDF.
var ErrNoRecords = errors.New("no records recognized in table text")

// PDFFile is one uploaded invoice PDF.
type PDFFile struct {
	Name string
	Data []byte
}

// RunInput carries everything a run needs: the table image, the uploaded
// PDFs, the marketplace variant and the two labels stamped into renamed
// filenames.
type RunInput struct {
	TableImage  []byte
	TableMIME   string
	Variant     records.Variant
	Marketplace string
	Unit        string
	PDFs        []PDFFile
}

// RunResult is the run's output: the parsed record set and one
// ProcessingResult per PDF, in input order.
type RunResult struct {
	RunID   uuid.UUID
	Records []records.Record
	Results []ProcessingResult
}

// Service runs the renaming pipeline. Collaborators are injected; store may
// be nil when no renamed copies should be written.
type Service struct {
	tables   extract.TableExtractor
	pdfs     extract.PDFTextExtractor
	store    storage.Storage
	observer Observer
	logger   *slog.Logger
}

// NewService creates the pipeline service.
func NewService(tables extract.TableExtractor, pdfs extract.PDFTextExtractor, store storage.Storage, observer Observer, logger *slog.Logger) *Service {
	if observer == nil {
		observer = NopObserver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tables:   tables,
		pdfs:     pdfs,
		store:    store,
		observer: observer,
		logger:   logger,
	}
}

// Run executes one full processing run. Table parsing is a hard
// prerequisite; per-PDF extraction failures degrade to empty text and only
// reduce match likelihood. A context cancellation between files stops the
// loop but keeps the results produced so far.
func (s *Service) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	runID := uuid.New()
	s.observer(SeverityInfo, "Lendo a tabela de referência...")

	tableText, err := s.tables.ExtractTableText(ctx, in.TableImage, in.TableMIME)
	if err != nil {
		s.observer(SeverityError, fmt.Sprintf("Falha ao ler a tabela: %v", err))
		return nil, fmt.Errorf("extracting table text: %w", err)
	}

	recs := parser.Parse(tableText, in.Variant)
	if len(recs) == 0 {
		s.observer(SeverityError, "Nenhum registro reconhecido na tabela")
		return nil, ErrNoRecords
	}
	s.observer(SeveritySuccess, fmt.Sprintf("%d registros reconhecidos", len(recs)))

	res := &RunResult{RunID: runID, Records: recs}
	for i, f := range in.PDFs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		result := s.processOne(ctx, f, recs, in)
		res.Results = append(res.Results, result)

		if result.Matched {
			s.observer(SeveritySuccess, fmt.Sprintf("%s → %s", f.Name, result.NewName))
		} else {
			s.observer(SeverityInfo, fmt.Sprintf("Sem correspondência para %s", f.Name))
		}
		s.logger.Info("processed file",
			slog.String("run_id", runID.String()),
			slog.String("file", f.Name),
			slog.Bool("matched", result.Matched),
			slog.Int("progress", i+1),
			slog.Int("total", len(in.PDFs)),
		)
	}

	return res, nil
}

func (s *Service) processOne(ctx context.Context, f PDFFile, recs []records.Record, in RunInput) ProcessingResult {
	text, err := s.pdfs.ExtractText(ctx, f.Data, in.Variant)
	if err != nil {
		// Degraded, not fatal: an empty text simply fails to match.
		s.observer(SeverityError, fmt.Sprintf("Falha ao extrair texto de %s: %v", f.Name, err))
		text = ""
	}

	rec := match.Match(text, recs, f.Name, in.Variant)
	if rec == nil {
		return ProcessingResult{
			OriginalName: f.Name,
			NewName:      f.Name,
			Suggestion:   match.Suggest(text, recs),
		}
	}

	newName := RenamedFileName(*rec, in.Marketplace, in.Unit)
	if s.store != nil {
		stored, err := s.store.Save(ctx, newName, bytes.NewReader(f.Data))
		if err != nil {
			s.observer(SeverityError, fmt.Sprintf("Falha ao gravar %s: %v", newName, err))
		} else {
			newName = stored
		}
	}

	return ProcessingResult{
		OriginalName: f.Name,
		NewName:      newName,
		Matched:      true,
	}
}
