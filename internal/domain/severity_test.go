package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverall_EmptyIsOK(t *testing.T) {
	assert.Equal(t, SeverityOK, Overall(nil))
	assert.Equal(t, SeverityOK, Overall([]CheckResult{}))
}

func TestOverall_Precedence(t *testing.T) {
	ok := CheckResult{Name: "disk_usage_root", Status: SeverityOK}
	warn := CheckResult{Name: "service_enabled", Status: SeverityWarn}
	crit := CheckResult{Name: "service_active", Status: SeverityCritical}

	tests := []struct {
		name    string
		results []CheckResult
		want    Severity
	}{
		{"all ok", []CheckResult{ok, ok, ok}, SeverityOK},
		{"one warn", []CheckResult{ok, warn, ok}, SeverityWarn},
		{"one critical", []CheckResult{ok, ok, crit}, SeverityCritical},
		{"critical beats warn", []CheckResult{warn, crit, warn}, SeverityCritical},
		{"order independent", []CheckResult{crit, warn, ok}, SeverityCritical},
		{"single warn", []CheckResult{warn}, SeverityWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overall(tt.results))
		})
	}
}

func TestSeverity_Strings(t *testing.T) {
	assert.Equal(t, "OK", SeverityOK.String())
	assert.Equal(t, "WARN", SeverityWarn.String())
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "critical", SeverityCritical.Lower())
}

func TestSeverity_JSONRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityOK, SeverityWarn, SeverityCritical} {
		b, err := json.Marshal(s)
		require.NoError(t, err)

		var got Severity
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, s, got)
	}

	var bad Severity
	assert.Error(t, json.Unmarshal([]byte(`"FATAL"`), &bad))
}
