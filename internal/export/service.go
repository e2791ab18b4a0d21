package export

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/report"
	"github.com/mpavel/water-reports/internal/repository"
)

// Service is a tiny façade over the report repository that produces XLSX
// bytes for exports. One workbook row per measurement record.
type Service struct {
	reports repository.ReportRepository
	logger  *slog.Logger
}

func NewService(reports repository.ReportRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{reports: reports, logger: logger}
}

// ExportZoneXLSX returns an XLSX workbook (as bytes) for the given zone and
// date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all reports for the zone.
func (s *Service) ExportZoneXLSX(ctx context.Context, zone int, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	stored, err := s.reports.List(ctx, zone, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	buf, rows, err := buildWorkbook(stored)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"zone", zone,
		"reports", len(stored),
		"rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}

// ExportAbnormalXLSX returns a workbook covering every stored report, across
// all zones, that flagged at least one out-of-range measurement.
func (s *Service) ExportAbnormalXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	stored, err := s.reports.ListAbnormal(ctx)
	if err != nil {
		return nil, fmt.Errorf("query abnormal reports: %w", err)
	}

	buf, rows, err := buildWorkbook(stored)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"scope", "abnormal",
		"reports", len(stored),
		"rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}

const sheetName = "Reports"

func buildWorkbook(stored []repository.StoredReport) ([]byte, int, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, 0, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Report Date",
		"Zone",
		"Report Type",
		"Parameter",
		"Unit",
		"Value",
		"Admissible Range",
		"Out of Range",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, sr := range stored {
		abnormal := report.Abnormal(&sr.Report)
		for _, rec := range sr.Report.Records {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheetName, cell, v)
			}

			write(1, sr.ReportDate.Format(constants.BulletinDateLayout))
			write(2, sr.ZoneID)
			write(3, string(sr.Kind))
			write(4, rec.Name)
			write(5, rec.Unit)
			if rec.Value.Numeric {
				write(6, rec.Value.Number)
			} else {
				write(6, rec.Value.Raw)
			}
			write(7, formatRange(rec.Range))
			if _, flagged := abnormal[rec.Key]; flagged {
				write(8, "yes")
			} else {
				write(8, "")
			}

			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheetName, "A", "A", 12) // date
	_ = f.SetColWidth(sheetName, "C", "C", 16) // type
	_ = f.SetColWidth(sheetName, "D", "D", 36) // parameter
	_ = f.SetColWidth(sheetName, "E", "E", 18) // unit
	_ = f.SetColWidth(sheetName, "G", "G", 28) // range

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), row - 2, nil
}

func formatRange(r report.Range) string {
	if !r.Parsed {
		return r.Raw
	}
	iv := r.Interval
	switch {
	case iv.Low != nil && iv.High != nil:
		return "≥" + formatBound(*iv.Low) + "; ≤" + formatBound(*iv.High)
	case iv.Low != nil:
		return "≥" + formatBound(*iv.Low)
	case iv.High != nil:
		return "≤" + formatBound(*iv.High)
	default:
		return ""
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
