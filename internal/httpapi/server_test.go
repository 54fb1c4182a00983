package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/report"
	"github.com/hamed0406/hostcheck/internal/target"
)

func buildWith(results []domain.CheckResult) BuildFunc {
	return func(context.Context) report.Report {
		return report.New(target.Target{Mode: target.ModeLocal}, "nginx", results,
			time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC))
	}
}

func TestHealthz(t *testing.T) {
	srv := NewServer(nil, buildWith(nil))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReport_OKRun(t *testing.T) {
	srv := NewServer(nil, buildWith([]domain.CheckResult{
		{Name: "load_average", Status: domain.SeverityOK, Message: "load1 0.50 with 4 cores (warn >= 6.00, critical >= 8.00)"},
	}))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "ok", doc["status"])
	assert.Equal(t, "nginx", doc["service"])
}

func TestReport_CriticalRunMapsTo503(t *testing.T) {
	srv := NewServer(nil, buildWith([]domain.CheckResult{
		{Name: "port_listening", Status: domain.SeverityCritical, Message: "no listener on port 8080"},
	}))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestReport_ServedFromCacheAfterRefresh(t *testing.T) {
	calls := 0
	srv := NewServer(nil, func(ctx context.Context) report.Report {
		calls++
		return report.New(target.Target{Mode: target.ModeLocal}, "", nil, time.Now())
	})

	srv.refreshOnce(context.Background())
	require.Equal(t, 1, calls)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/api/report")
		require.NoError(t, err)
		resp.Body.Close()
	}
	// All requests hit the cache; the battery did not run again.
	assert.Equal(t, 1, calls)
}
