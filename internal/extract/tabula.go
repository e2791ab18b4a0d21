package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mpavel/water-reports/internal/common"
	"github.com/mpavel/water-reports/internal/tabular"
)

// TabulaExtractor shells out to the tabula CLI (the same engine the
// bulletins were originally digitized with) and decodes its JSON table
// output into raw grids.
type TabulaExtractor struct {
	cfg    common.ExtractConfig
	runner Runner
	logger *slog.Logger
}

func NewTabulaExtractor(cfg common.ExtractConfig, logger *slog.Logger) *TabulaExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.JavaBin == "" {
		cfg.JavaBin = "java"
	}
	if cfg.TabulaJar == "" {
		cfg.TabulaJar = "tabula.jar"
	}
	if cfg.Pages == "" {
		cfg.Pages = "all"
	}
	return &TabulaExtractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (e *TabulaExtractor) WithRunner(r Runner) *TabulaExtractor {
	e.runner = r
	return e
}

func (e *TabulaExtractor) Extract(ctx context.Context, path string) ([]tabular.RawGrid, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	args := []string{"-jar", e.cfg.TabulaJar, "--format", "JSON", "--pages", e.cfg.Pages, path}
	stdout, stderr, err := e.runner.Run(ctx, e.cfg.JavaBin, e.logger, args...)
	if err != nil {
		return nil, fmt.Errorf("tabula %s: %w (stderr: %s)", path, err, truncate(string(stderr), 2<<10))
	}
	grids, err := DecodeTables(stdout)
	if err != nil {
		return nil, fmt.Errorf("tabula %s: %w", path, err)
	}
	e.logger.Debug("tables extracted", "path", path, "tables", len(grids))
	return grids, nil
}

// tabulaTable mirrors one element of tabula's --format JSON output.
type tabulaTable struct {
	Data [][]tabulaCell `json:"data"`
}

type tabulaCell struct {
	Text string `json:"text"`
}

// DecodeTables validates tabula JSON output against the embedded schema and
// decodes it into raw grids. Cell text is trimmed; blank cells become empty
// cells so the assembler can tell "no value" from text.
func DecodeTables(data []byte) ([]tabular.RawGrid, error) {
	if err := validateOutput(data); err != nil {
		return nil, err
	}
	var tables []tabulaTable
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("decode table list: %w", err)
	}

	grids := make([]tabular.RawGrid, 0, len(tables))
	for _, t := range tables {
		grid := make(tabular.RawGrid, 0, len(t.Data))
		for _, row := range t.Data {
			cells := make([]tabular.Cell, 0, len(row))
			for _, c := range row {
				cells = append(cells, toCell(c.Text))
			}
			grid = append(grid, cells)
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

func toCell(text string) tabular.Cell {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return tabular.Empty()
	}
	return tabular.Text(trimmed)
}
