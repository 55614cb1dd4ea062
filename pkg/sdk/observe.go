package leitor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// observer emits a log line and optional prometheus samples for every SDK
// operation. A nil observer is valid and does nothing.
type observer struct {
	logger  *slog.Logger
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}

	o.ops = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leitor",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK operations by name and outcome.",
	}, []string{"operation", "status"})
	o.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leitor",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	if err := register(reg, &o.ops); err != nil {
		return nil, err
	}
	if err := register(reg, &o.latency); err != nil {
		return nil, err
	}
	return o, nil
}

// register adds the collector to reg, adopting the already-registered
// instance when another client on the same registry got there first.
func register[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var dup prometheus.AlreadyRegisteredError
	if errors.As(err, &dup) {
		existing, ok := dup.ExistingCollector.(T)
		if !ok {
			return fmt.Errorf("leitor: collector %T already registered with a different type", *c)
		}
		*c = existing
		return nil
	}
	return fmt.Errorf("leitor: register collector: %w", err)
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if o.ops != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.ops.WithLabelValues(op, status).Inc()
		o.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("operation failed", "op", op, "elapsed", elapsed, "error", err)
		return
	}
	o.logger.Debug("operation done", "op", op, "elapsed", elapsed)
}
