// Command renamer matches invoice PDFs against a reference table extracted
// from an image and writes renamed copies of the matched files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ruidferreira/nota-renamer/internal/domain/process"
	"github.com/ruidferreira/nota-renamer/internal/domain/records"
	"github.com/ruidferreira/nota-renamer/internal/extract"
	"github.com/ruidferreira/nota-renamer/internal/report"
	"github.com/ruidferreira/nota-renamer/pkg/config"
	"github.com/ruidferreira/nota-renamer/pkg/storage"
)

func main() {
	var (
		tablePath   = flag.String("table", "", "path to the reference table image (png/jpg)")
		pdfDir      = flag.String("pdf-dir", "", "directory containing the invoice PDFs")
		variantName = flag.String("variant", "", "marketplace variant: mercadolivre, shopee or magalu")
		marketplace = flag.String("marketplace", "", "marketplace label stamped into renamed files")
		unit        = flag.String("unit", "", "organizational-unit label stamped into renamed files")
		outDir      = flag.String("out", "", "output directory for renamed copies (default from OUTPUT_DIR)")
		reportCSV   = flag.String("report-csv", "", "optional path for the CSV run report")
		reportXLSX  = flag.String("report-xlsx", "", "optional path for the XLSX run report")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *tablePath == "" || *pdfDir == "" || *variantName == "" {
		flag.Usage()
		os.Exit(2)
	}

	variant, ok := records.ParseVariant(*variantName)
	if !ok {
		logger.Error("unknown variant", slog.String("variant", *variantName))
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", slog.Any("error", err))
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = cfg.Output.Dir
	}

	if err := run(context.Background(), cfg, logger, runOptions{
		tablePath:   *tablePath,
		pdfDir:      *pdfDir,
		variant:     variant,
		marketplace: *marketplace,
		unit:        *unit,
		outDir:      *outDir,
		reportCSV:   *reportCSV,
		reportXLSX:  *reportXLSX,
	}); err != nil {
		logger.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type runOptions struct {
	tablePath   string
	pdfDir      string
	variant     records.Variant
	marketplace string
	unit        string
	outDir      string
	reportCSV   string
	reportXLSX  string
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts runOptions) error {
	image, err := os.ReadFile(opts.tablePath)
	if err != nil {
		return fmt.Errorf("reading table image: %w", err)
	}

	pdfs, err := loadPDFs(opts.pdfDir)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files found in %s", opts.pdfDir)
	}

	gem, err := extract.NewGeminiExtractor(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(opts.outDir)
	if err != nil {
		return err
	}

	svc := process.NewService(gem, extract.NewLayerExtractor(gem), store, process.SlogObserver(logger), logger)

	res, err := svc.Run(ctx, process.RunInput{
		TableImage:  image,
		TableMIME:   imageMIME(opts.tablePath),
		Variant:     opts.variant,
		Marketplace: opts.marketplace,
		Unit:        opts.unit,
		PDFs:        pdfs,
	})
	if err != nil {
		return err
	}

	if opts.reportCSV != "" {
		f, err := os.Create(opts.reportCSV)
		if err != nil {
			return fmt.Errorf("creating csv report: %w", err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, res.Results); err != nil {
			return err
		}
	}
	if opts.reportXLSX != "" {
		if err := report.WriteXLSX(opts.reportXLSX, res.Results); err != nil {
			return err
		}
	}

	matched := 0
	for _, r := range res.Results {
		if r.Matched {
			matched++
		}
	}
	fmt.Printf("%d/%d arquivos correspondidos; cópias renomeadas em %s\n",
		matched, len(res.Results), opts.outDir)
	return nil
}

func loadPDFs(dir string) ([]process.PDFFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading pdf directory: %w", err)
	}

	var pdfs []process.PDFFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		pdfs = append(pdfs, process.PDFFile{Name: e.Name(), Data: data})
	}

	sort.Slice(pdfs, func(i, j int) bool { return pdfs[i].Name < pdfs[j].Name })
	return pdfs, nil
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
