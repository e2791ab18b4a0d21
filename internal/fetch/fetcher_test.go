package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavel/water-reports/internal/common"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *HTTPFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPFetcher(common.FetchConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
}

func TestFetchReturnsBody(t *testing.T) {
	var gotPath string
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	data, err := f.Fetch(context.Background(), 9, time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
	assert.Equal(t, "/descarcab?z=9&d=1-22-2020", gotPath)
}

func TestFetchLegacyURLBeforeCutover(t *testing.T) {
	var gotPath string
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte("x"))
	})

	_, err := f.Fetch(context.Background(), 3, time.Date(2019, 2, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "/assets/pdf/3_05-02-2019.pdf", gotPath)
}

func TestFetchAbsentOnNotFound(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	data, err := f.Fetch(context.Background(), 9, time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err, "a missing bulletin is not an error")
	assert.Nil(t, data)
}

func TestFetchAbsentOnEmptyBody(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	data, err := f.Fetch(context.Background(), 9, time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestInspectPDFRejectsNonPDF(t *testing.T) {
	_, err := InspectPDF([]byte("<html>zone not found</html>"))
	require.Error(t, err)
}
