package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/common"
	"github.com/mpavel/water-reports/internal/extract"
	"github.com/mpavel/water-reports/internal/fetch"
	"github.com/mpavel/water-reports/internal/report"
	"github.com/mpavel/water-reports/internal/repository"
	"github.com/mpavel/water-reports/internal/tabular"
)

// Result summarizes one (zone, date) document run.
type Result struct {
	Zone         int
	Date         time.Time
	Status       constants.DocumentStatus
	Filename     string
	Pages        int
	Built        int // reports persisted
	SkippedGrids int // extracted tables that were not bulletin reports
}

// Processor coordinates fetch (download) then extract (tables) then build
// (typed reports) for one document, persisting every report it recognizes.
type Processor struct {
	logger      *slog.Logger
	fetcher     fetch.Fetcher
	extractor   extract.TableExtractor
	builder     *report.Builder
	reports     repository.ReportRepository
	downloadDir string
	inspect     fetch.PDFInspector
}

func NewProcessor(
	logger *slog.Logger,
	fetcher fetch.Fetcher,
	extractor extract.TableExtractor,
	builder *report.Builder,
	reports repository.ReportRepository,
	downloadDir string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if builder == nil {
		builder = report.NewBuilder(nil, logger)
	}
	if downloadDir == "" {
		downloadDir = "./bulletins"
	}
	return &Processor{
		logger:      logger,
		fetcher:     fetcher,
		extractor:   extractor,
		builder:     builder,
		reports:     reports,
		downloadDir: downloadDir,
		inspect:     fetch.InspectPDF,
	}
}

// WithInspector swaps the PDF validation step. Tests use this to process
// fixture bytes that are not real PDFs.
func (p *Processor) WithInspector(inspect fetch.PDFInspector) *Processor {
	p.inspect = inspect
	return p
}

// ProcessDocument downloads, validates, and parses the bulletin for one
// (zone, date) pair. A missing bulletin is a normal outcome, not an error.
// A grid whose title or headers are not a known bulletin layout is skipped;
// a known layout with an unrecognized parameter label fails the document,
// since silently dropping a measurement would corrupt the series.
func (p *Processor) ProcessDocument(ctx context.Context, zone int, date time.Time) (Result, error) {
	res := Result{Zone: zone, Date: date, Status: constants.DocumentFailed}
	runID := common.RunIDFrom(ctx)

	body, err := p.fetcher.Fetch(ctx, zone, date)
	if err != nil {
		return res, fmt.Errorf("fetch bulletin: %w", err)
	}
	if body == nil {
		p.logger.Info("bulletin missing", "run_id", runID, "zone", zone, "date", date.Format(constants.BulletinDateLayout))
		res.Status = constants.DocumentMissing
		return res, nil
	}

	pages, err := p.inspect(body)
	if err != nil {
		return res, fmt.Errorf("inspect bulletin: %w", err)
	}
	res.Pages = pages

	path, err := p.stash(zone, date, body)
	if err != nil {
		return res, err
	}
	res.Filename = filepath.Base(path)

	grids, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return res, fmt.Errorf("extract tables: %w", err)
	}

	for i, grid := range grids {
		rep, err := p.builder.Build(grid)
		switch {
		case err == nil:
		case errors.Is(err, report.ErrUnrecognizedReportKind),
			errors.Is(err, report.ErrMalformedHeader),
			errors.Is(err, tabular.ErrEmptyGrid):
			p.logger.Info("skipping non-report table",
				"run_id", runID, "zone", zone, "grid", i, "reason", err)
			res.SkippedGrids++
			continue
		default:
			return res, fmt.Errorf("build report from grid %d: %w", i, err)
		}

		rep.Filename = res.Filename
		rep.ZoneID = zone

		abnormal := report.Abnormal(rep)
		for key, rec := range abnormal {
			p.logger.Warn("measurement out of range",
				"run_id", runID, "zone", zone, "date", date.Format(constants.BulletinDateLayout),
				"kind", rep.Kind, "key", key, "value", rec.Value, "range", rec.Range)
		}

		id, err := p.reports.Append(ctx, zone, date, rep, len(abnormal))
		if err != nil {
			return res, fmt.Errorf("persist report: %w", err)
		}
		p.logger.Debug("report persisted",
			"run_id", runID, "report_id", id, "kind", rep.Kind, "records", len(rep.Records))
		res.Built++
	}

	res.Status = constants.DocumentProcessed
	return res, nil
}

// stash writes the downloaded bytes under the canonical bulletin name so
// the extractor (an external process) can read them, and so reruns can
// work offline from the same directory.
func (p *Processor) stash(zone int, date time.Time, body []byte) (string, error) {
	if err := os.MkdirAll(p.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(p.downloadDir, constants.BulletinFilename(zone, date))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write bulletin: %w", err)
	}
	return path, nil
}
