package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity classifies a single probe outcome. The ordering matters:
// aggregation keeps the highest value seen across a run.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarn
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarn:
		return "WARN"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Lower is the form used for the top-level "status" field of the JSON report.
func (s Severity) Lower() string {
	return strings.ToLower(s.String())
}

func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "OK":
		return SeverityOK, nil
	case "WARN":
		return SeverityWarn, nil
	case "CRITICAL":
		return SeverityCritical, nil
	}
	return SeverityOK, fmt.Errorf("unknown severity %q", raw)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
