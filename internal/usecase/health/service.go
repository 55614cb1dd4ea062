package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	lookup LookupChecker
}

// New creates a Service. lookup can be nil.
func New(lookup LookupChecker) *Service {
	return &Service{lookup: lookup}
}

// Check runs health checks against all components. Document, session and
// highlight state live in memory, so the lookup provider is the only
// dependency worth probing.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.lookup != nil {
		if err := s.lookup.HealthCheck(ctx); err != nil {
			checks["lookup"] = CheckError
		} else {
			checks["lookup"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
