package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/common"
	"github.com/mpavel/water-reports/internal/report"
)

const reportsSchema = `
CREATE TABLE IF NOT EXISTS reports (
	id             TEXT PRIMARY KEY,
	zone_id        INTEGER NOT NULL,
	report_date    TEXT NOT NULL,
	kind           TEXT NOT NULL,
	title          TEXT NOT NULL,
	filename       TEXT NOT NULL,
	payload        TEXT NOT NULL,
	abnormal_count INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
)`

// StoredReport is one persisted bulletin table plus its batch metadata.
type StoredReport struct {
	ID            uuid.UUID
	ZoneID        int
	ReportDate    time.Time
	Kind          constants.ReportKind
	Filename      string
	Report        report.Report
	AbnormalCount int
	CreatedAt     time.Time
}

// ReportRepository appends parsed reports and serves them back for export.
// Append is fire-and-forget from the parsing core's point of view.
type ReportRepository interface {
	Append(ctx context.Context, zone int, date time.Time, rep *report.Report, abnormalCount int) (uuid.UUID, error)
	List(ctx context.Context, zone int, from, to *time.Time) ([]StoredReport, error)
	ListAbnormal(ctx context.Context) ([]StoredReport, error)
}

type sqlReportRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewReportRepository creates the reports table if needed.
func NewReportRepository(ctx context.Context, db *sql.DB, logger *slog.Logger) (ReportRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.ExecContext(ctx, reportsSchema); err != nil {
		return nil, fmt.Errorf("create reports table: %w: %w", common.ErrDatabase, err)
	}
	return &sqlReportRepository{db: db, logger: logger}, nil
}

func (r *sqlReportRepository) Append(ctx context.Context, zone int, date time.Time, rep *report.Report, abnormalCount int) (uuid.UUID, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.New()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reports (id, zone_id, report_date, kind, title, filename, payload, abnormal_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id.String(), zone, date.Format(constants.BulletinDateLayout), string(rep.Kind),
		rep.Title, rep.Filename, string(payload), abnormalCount,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert report: %w: %w", common.ErrDatabase, err)
	}

	r.logger.Info("report appended",
		"report_id", id, "zone", zone, "date", date.Format(constants.BulletinDateLayout),
		"kind", rep.Kind, "records", len(rep.Records), "abnormal", abnormalCount,
	)
	return id, nil
}

func (r *sqlReportRepository) List(ctx context.Context, zone int, from, to *time.Time) ([]StoredReport, error) {
	query := `SELECT id, zone_id, report_date, kind, filename, payload, abnormal_count, created_at
		FROM reports WHERE zone_id = $1`
	args := []any{zone}
	if from != nil {
		args = append(args, from.Format(constants.BulletinDateLayout))
		query += fmt.Sprintf(" AND report_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, to.Format(constants.BulletinDateLayout))
		query += fmt.Sprintf(" AND report_date <= $%d", len(args))
	}
	query += " ORDER BY report_date, kind"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w: %w", common.ErrDatabase, err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *sqlReportRepository) ListAbnormal(ctx context.Context) ([]StoredReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, zone_id, report_date, kind, filename, payload, abnormal_count, created_at
		 FROM reports WHERE abnormal_count > 0 ORDER BY report_date, zone_id`)
	if err != nil {
		return nil, fmt.Errorf("list abnormal reports: %w: %w", common.ErrDatabase, err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]StoredReport, error) {
	var out []StoredReport
	for rows.Next() {
		var (
			sr         StoredReport
			id         string
			reportDate string
			kind       string
			payload    string
			createdAt  string
		)
		if err := rows.Scan(&id, &sr.ZoneID, &reportDate, &kind, &sr.Filename, &payload, &sr.AbnormalCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		parsedID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse report id %q: %w", id, err)
		}
		sr.ID = parsedID
		sr.Kind = constants.ReportKind(kind)
		if sr.ReportDate, err = time.Parse(constants.BulletinDateLayout, reportDate); err != nil {
			return nil, fmt.Errorf("parse report date %q: %w", reportDate, err)
		}
		if sr.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		if err := json.Unmarshal([]byte(payload), &sr.Report); err != nil {
			return nil, fmt.Errorf("decode report payload: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}
