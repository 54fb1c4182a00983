package domain

// CheckResult is the outcome of a single probe. Immutable once produced;
// the orchestrator appends results in execution order and never reorders.
type CheckResult struct {
	Name    string   `json:"name"`
	Status  Severity `json:"status"`
	Message string   `json:"message"`
}

// Overall reduces a result sequence to one severity: CRITICAL beats WARN
// beats OK. An empty sequence is OK.
func Overall(results []CheckResult) Severity {
	overall := SeverityOK
	for _, r := range results {
		if r.Status > overall {
			overall = r.Status
		}
	}
	return overall
}
