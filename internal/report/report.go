// Package report renders one probe run for humans (text) or automation
// (JSON). Both forms present the results in execution order.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/target"
)

// Report is the rendered view of one run. The JSON shape is part of the
// tool's contract:
//
//	{"status","target","service","timestamp","checks":[{"name","status","message"}]}
type Report struct {
	Status    string               `json:"status"`
	Target    string               `json:"target"`
	Service   string               `json:"service"`
	Timestamp string               `json:"timestamp"`
	Checks    []domain.CheckResult `json:"checks"`

	Mode    string          `json:"-"`
	Overall domain.Severity `json:"-"`
}

func New(t target.Target, service string, results []domain.CheckResult, now time.Time) Report {
	if results == nil {
		results = []domain.CheckResult{}
	}
	overall := domain.Overall(results)
	return Report{
		Status:    overall.Lower(),
		Target:    t.Label(),
		Service:   service,
		Timestamp: now.Format(time.RFC3339),
		Checks:    results,
		Mode:      string(t.Mode),
		Overall:   overall,
	}
}

// Text renders the human form: a header line naming the target and run
// context, then one "[STATUS] name: message" line per result.
func (r Report) Text() string {
	service := r.Service
	if service == "" {
		service = "not-set"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "target=%s mode=%s service=%s\n", r.Target, r.Mode, service)
	for _, c := range r.Checks {
		fmt.Fprintf(&b, "[%s] %s: %s\n", c.Status, c.Name, c.Message)
	}
	return b.String()
}

// JSON renders the machine form. encoding/json escapes every string field,
// so messages with quotes, backslashes, or control characters survive a
// round-trip through any standard JSON parser.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
