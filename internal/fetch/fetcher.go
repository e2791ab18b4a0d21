package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mpavel/water-reports/internal/common"
)

// Fetcher returns the raw bulletin bytes for one (zone, date). A nil slice
// with a nil error means the operator never published a bulletin for that
// pair; that is not a failure.
type Fetcher interface {
	Fetch(ctx context.Context, zone int, date time.Time) ([]byte, error)
}

// The operator moved bulletins behind the descarcab endpoint on 2019-07-08;
// older files live under a static path.
var urlSchemeCutover = time.Date(2019, time.July, 8, 0, 0, 0, 0, time.UTC)

// HTTPFetcher downloads bulletins from the operator's site.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPFetcher(cfg common.FetchConfig, logger *slog.Logger) *HTTPFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.apanovabucuresti.ro"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, zone int, date time.Time) ([]byte, error) {
	url := f.bulletinURL(zone, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Info("bulletin not available", "url", url, "status", resp.StatusCode)
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", url, err)
	}
	if len(body) == 0 {
		f.logger.Info("bulletin response empty", "url", url)
		return nil, nil
	}
	return body, nil
}

func (f *HTTPFetcher) bulletinURL(zone int, date time.Time) string {
	if date.Before(urlSchemeCutover) {
		return fmt.Sprintf("%s/assets/pdf/%d_%02d-%02d-%d.pdf",
			f.baseURL, zone, date.Day(), int(date.Month()), date.Year())
	}
	return fmt.Sprintf("%s/descarcab?z=%d&d=%d-%d-%d",
		f.baseURL, zone, int(date.Month()), date.Day(), date.Year())
}
