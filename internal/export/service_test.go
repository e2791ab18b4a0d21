package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mpavel/water-reports/constants"
	"github.com/mpavel/water-reports/internal/parse"
	"github.com/mpavel/water-reports/internal/report"
	"github.com/mpavel/water-reports/internal/repository"
)

type fakeRepo struct {
	stored []repository.StoredReport

	gotZone int
	gotFrom *time.Time
	gotTo   *time.Time
}

func (f *fakeRepo) Append(context.Context, int, time.Time, *report.Report, int) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeRepo) List(_ context.Context, zone int, from, to *time.Time) ([]repository.StoredReport, error) {
	f.gotZone, f.gotFrom, f.gotTo = zone, from, to
	return f.stored, nil
}

func (f *fakeRepo) ListAbnormal(context.Context) ([]repository.StoredReport, error) {
	return f.stored, nil
}

func fp(v float64) *float64 { return &v }

func storedChemical() repository.StoredReport {
	return repository.StoredReport{
		ID:         uuid.New(),
		ZoneID:     9,
		ReportDate: time.Date(2020, 2, 20, 0, 0, 0, 0, time.UTC),
		Kind:       constants.KindChemical,
		Report: report.Report{
			Title: report.TitleChemical,
			Kind:  constants.KindChemical,
			Records: []report.MeasurementRecord{
				{Key: "ph", Name: "pH", Unit: "unitati de pH",
					Value: report.NumericValue(10.1),
					Range: report.ParsedRange(parse.Interval{Low: fp(6.5), High: fp(9.5)})},
				{Key: "smell", Name: "Miros",
					Value: report.RawValue("Acceptabila"),
					Range: report.RawRange("Acceptabila consumatorilor")},
			},
		},
		AbnormalCount: 1,
	}
}

func TestExportZoneXLSX(t *testing.T) {
	repo := &fakeRepo{stored: []repository.StoredReport{storedChemical()}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	from := time.Date(2020, 2, 1, 11, 30, 0, 0, time.UTC)
	data, err := svc.ExportZoneXLSX(context.Background(), 9, &from, nil)
	require.NoError(t, err)

	assert.Equal(t, 9, repo.gotZone)
	require.NotNil(t, repo.gotFrom)
	assert.Equal(t, time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), *repo.gotFrom,
		"window bounds are truncated to dates")
	require.NotNil(t, repo.gotTo, "open upper bound defaults to today")

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	cell := func(ref string) string {
		v, err := wb.GetCellValue("Reports", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Report Date", cell("A1"))
	assert.Equal(t, "Out of Range", cell("H1"))

	assert.Equal(t, "2020-02-20", cell("A2"))
	assert.Equal(t, "9", cell("B2"))
	assert.Equal(t, "chemical", cell("C2"))
	assert.Equal(t, "pH", cell("D2"))
	assert.Equal(t, "10.1", cell("F2"))
	assert.Equal(t, "≥6.5; ≤9.5", cell("G2"))
	assert.Equal(t, "yes", cell("H2"))

	assert.Equal(t, "Miros", cell("D3"))
	assert.Equal(t, "Acceptabila", cell("F3"))
	assert.Equal(t, "Acceptabila consumatorilor", cell("G3"))
	assert.Equal(t, "", cell("H3"), "raw pairs are never flagged")
}

func TestExportAbnormalXLSX(t *testing.T) {
	repo := &fakeRepo{stored: []repository.StoredReport{storedChemical()}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	data, err := svc.ExportAbnormalXLSX(context.Background())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Reports")
	require.NoError(t, err)
	assert.Len(t, rows, 3, "header plus one row per record")
}

func TestExportEmptyZone(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	data, err := svc.ExportZoneXLSX(context.Background(), 3, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, repo.gotFrom)
	assert.Nil(t, repo.gotTo)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Reports")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
