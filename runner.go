package biweekly

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ErrNoOutput is returned when no document in the batch produced any
// records, so there was nothing to combine. It is an outcome, not a crash.
var ErrNoOutput = errors.New("no reports produced any records")

// TableExtractor is the page/table extraction collaborator: document bytes
// in, per-page raw tables out.
type TableExtractor interface {
	ExtractDocument(pdfBytes []byte) ([][]RawTable, error)
}

// Runner drives one batch: list the published reports, download each PDF,
// extract and normalize its tables, write per-report CSVs, and combine them.
// Failures are contained per document; only an empty batch surfaces.
type Runner struct {
	client     *Client
	downloader *Downloader
	extractor  TableExtractor
	cfg        *Config
	kind       ReportKind
	dates      DateRange
	log        *slog.Logger
}

// NewRunner assembles a batch runner. A nil logger uses slog.Default.
func NewRunner(client *Client, downloader *Downloader, extractor TableExtractor, cfg *Config, kind ReportKind, dates DateRange, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		client:     client,
		downloader: downloader,
		extractor:  extractor,
		cfg:        cfg,
		kind:       kind,
		dates:      dates,
		log:        logger,
	}
}

// Run processes every listed report year by year and returns the path of the
// combined CSV. Returns ErrNoOutput when no document yielded records.
func (r *Runner) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(r.cfg.DownloadDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create download directory")
	}
	if err := os.MkdirAll(r.cfg.CSVDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create CSV directory")
	}

	startYear := r.cfg.StartYear
	if r.dates.StartYear != 0 {
		startYear = r.dates.StartYear
	}
	endYear := time.Now().Year()
	if r.dates.EndYear != 0 {
		endYear = r.dates.EndYear
	}

	var reportCSVs []string
	for year := startYear; year <= endYear; year++ {
		links, err := r.client.ListReports(ctx, r.kind, year)
		if err != nil {
			// One bad year leaves that scope empty; the batch goes on.
			r.log.Error("listing failed", "year", year, "error", err)
			continue
		}
		links = r.dates.Filter(links, r.log)
		r.log.Info("processing year", "year", year, "reports", len(links))

		for _, link := range links {
			csvPath, err := r.processDocument(ctx, link)
			if err != nil {
				r.log.Error("report failed", "url", link.URL, "error", err)
				continue
			}
			if csvPath != "" {
				reportCSVs = append(reportCSVs, csvPath)
			}
		}
	}

	if len(reportCSVs) == 0 {
		return "", ErrNoOutput
	}

	combinedPath := filepath.Join(r.cfg.CSVDir, "combined_biweekly_reports.csv")
	f, err := os.Create(combinedPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to create combined CSV")
	}
	defer f.Close()
	if err := CombineReports(f, reportCSVs); err != nil {
		return "", err
	}

	r.log.Info("combined reports", "path", combinedPath, "reports", len(reportCSVs))
	return combinedPath, nil
}

// processDocument downloads and converts one report. An empty path with a
// nil error means the report was skipped (not a PDF) or had no records.
func (r *Runner) processDocument(ctx context.Context, link DocumentLink) (string, error) {
	data, ok, err := r.downloader.Fetch(ctx, link.URL)
	if err != nil {
		return "", err
	}
	if !ok {
		r.log.Info("skipping non-PDF entry", "url", link.URL)
		return "", nil
	}

	pdfPath := filepath.Join(r.cfg.DownloadDir, ReportFilename(link.Date, ".pdf"))
	if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to save %s", pdfPath)
	}

	records, err := r.Convert(data, link.URL)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		r.log.Warn("no records extracted", "url", link.URL)
		return "", nil
	}

	csvPath := filepath.Join(r.cfg.CSVDir, ReportFilename(link.Date, ".csv"))
	if err := WriteRecordsFile(csvPath, records); err != nil {
		return "", err
	}

	r.log.Info("report converted", "url", link.URL, "records", len(records), "csv", csvPath)
	return csvPath, nil
}

// Convert runs the extraction and walking pipeline over one document's
// bytes, stamping sourceURL onto every record.
func (r *Runner) Convert(pdfBytes []byte, sourceURL string) ([]Record, error) {
	pages, err := r.extractor.ExtractDocument(pdfBytes)
	if err != nil {
		return nil, err
	}

	walker := NewWalker(r.kind, sourceURL, r.log)
	for _, tables := range pages {
		walker.WalkPage(tables)
	}
	return walker.Records(), nil
}
