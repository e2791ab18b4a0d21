package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/common"
	"github.com/mpavel/water-reports/internal/core"
	"github.com/mpavel/water-reports/internal/core/async"
	"github.com/mpavel/water-reports/internal/export"
	"github.com/mpavel/water-reports/internal/extract"
	"github.com/mpavel/water-reports/internal/fetch"
	"github.com/mpavel/water-reports/internal/ingest"
	"github.com/mpavel/water-reports/internal/repository"
)

func main() {
	var (
		zonesFlag    = flag.String("zones", "", "comma-separated zone IDs, e.g. 1,3,9 (default: all zones)")
		fromFlag     = flag.String("from", "", "first report date, YYYY-MM-DD")
		toFlag       = flag.String("to", "", "last report date, YYYY-MM-DD (default: from)")
		dirFlag      = flag.String("dir", "", "read bulletins from this directory instead of downloading")
		outFlag      = flag.String("out", "", "write an XLSX export of the processed zones to this file")
		abnormalFlag = flag.Bool("abnormal", false, "export only reports with out-of-range measurements")
		dbFlag       = flag.String("db", "", "database DSN (default: DB_URL)")
		inmemFlag    = flag.Bool("inmem", false, "use an in-memory database (one-shot runs)")
		workersFlag  = flag.Int("workers", 0, "worker count (default: BATCH_WORKERS)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *dbFlag != "" {
		cfg.Database.DSN = *dbFlag
	}
	if *inmemFlag {
		cfg.Database.DSN = ":memory:"
	}
	if *workersFlag > 0 {
		cfg.Batch.Workers = *workersFlag
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	zones, err := parseZones(*zonesFlag)
	if err != nil {
		logger.Error("invalid --zones", "error", err)
		os.Exit(1)
	}

	// With --dir and no --from, process exactly the bulletins found on disk.
	useLocal := *dirFlag != "" && *fromFlag == ""
	var local []ingest.LocalBulletin
	if useLocal {
		found, stats, err := ingest.ScanDir(*dirFlag)
		if err != nil {
			logger.Error("scan failed", "dir", *dirFlag, "error", err)
			os.Exit(1)
		}
		logger.Info("directory scanned", "dir", *dirFlag,
			"scanned", stats.Scanned, "matched", stats.Matched, "skipped", stats.Skipped)
		local = found
	}

	var from, to time.Time
	if useLocal {
		for _, b := range local {
			if from.IsZero() || b.Date.Before(from) {
				from = b.Date
			}
			if b.Date.After(to) {
				to = b.Date
			}
		}
	} else {
		if from, to, err = parseWindow(*fromFlag, *toFlag); err != nil {
			logger.Error("invalid date window", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, cleanup, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	if err := repository.HealthCheck(ctx, db, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	reports, err := repository.NewReportRepository(ctx, db, logger)
	if err != nil {
		logger.Error("failed to prepare report storage", "error", err)
		os.Exit(1)
	}

	var fetcher fetch.Fetcher
	if *dirFlag != "" {
		fetcher = ingest.NewDirFetcher(*dirFlag, logger)
	} else {
		fetcher = fetch.NewHTTPFetcher(cfg.Fetch, logger)
	}
	extractor := extract.NewTabulaExtractor(cfg.Extract, logger)
	processor := core.NewProcessor(logger, fetcher, extractor, nil, reports, cfg.Fetch.DownloadDir)

	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(cfg.Batch.QueueSize),
		async.WithProcessTimeout(cfg.Batch.JobTimeout),
	)

	runID := uuid.NewString()
	runCtx := common.WithRunID(ctx, runID)
	logger.Info("batch run starting",
		"run_id", runID,
		"zones", len(zones),
		"from", from.Format(constants.BulletinDateLayout),
		"to", to.Format(constants.BulletinDateLayout),
		"workers", cfg.Batch.Workers,
	)

	var pending []async.Job
	if useLocal {
		for _, b := range local {
			pending = append(pending, async.Job{Zone: b.Zone, Date: b.Date})
		}
	} else {
		for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
			for _, zone := range zones {
				pending = append(pending, async.Job{Zone: zone, Date: date})
			}
		}
	}

	jobs := 0
enqueue:
	for _, job := range pending {
		select {
		case <-ctx.Done():
			logger.Warn("interrupted while enqueueing", "run_id", runID)
			break enqueue
		default:
		}
		if err := queue.Enqueue(runCtx, job); err != nil {
			logger.Error("enqueue failed", "zone", job.Zone, "date", job.Date, "error", err)
			continue
		}
		jobs++
	}

	queue.Shutdown(context.Background())
	stats := queue.Stats()
	logger.Info("batch run finished",
		"run_id", runID,
		"jobs", jobs,
		"processed", stats.Processed,
		"missing", stats.Missing,
		"failed", stats.Failed,
	)

	if *outFlag != "" {
		if err := writeExport(ctx, reports, zones, from, to, *outFlag, *abnormalFlag, logger); err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
	}

	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// parseZones accepts "1,3,9"; empty means every known zone.
func parseZones(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		zones := make([]int, 0, common.MaxZoneID)
		for z := 1; z <= common.MaxZoneID; z++ {
			zones = append(zones, z)
		}
		return zones, nil
	}
	var zones []int
	for _, part := range strings.Split(s, ",") {
		z, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", part, err)
		}
		if err := common.ValidateZone(z); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func parseWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from is required")
	}
	from, err := time.Parse(constants.BulletinDateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	to := from
	if toStr != "" {
		if to, err = time.Parse(constants.BulletinDateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
	}
	return from, to, common.ValidateDateRange(from, to)
}

func writeExport(ctx context.Context, reports repository.ReportRepository, zones []int, from, to time.Time, out string, abnormalOnly bool, logger *slog.Logger) error {
	svc := export.NewService(reports, logger)
	if abnormalOnly {
		data, err := svc.ExportAbnormalXLSX(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info("export written", "scope", "abnormal", "path", out)
		return nil
	}
	for _, zone := range zones {
		data, err := svc.ExportZoneXLSX(ctx, zone, &from, &to)
		if err != nil {
			return err
		}
		name := out
		if len(zones) > 1 {
			name = fmt.Sprintf("%s_z%02d%s", strings.TrimSuffix(out, ".xlsx"), zone, ".xlsx")
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		logger.Info("export written", "zone", zone, "path", name)
	}
	return nil
}
