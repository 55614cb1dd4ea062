package health

import "context"

// LookupChecker checks lookup provider availability.
type LookupChecker interface {
	HealthCheck(ctx context.Context) error
}
