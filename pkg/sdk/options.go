package leitor

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	provider LookupProvider

	openaiKey     string
	openaiBaseURL string
	openaiModel   string

	minScale  float64
	maxScale  float64
	scaleStep float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithOpenAILookup configures dictionary lookups against an
// OpenAI-compatible chat API. baseURL may be empty for the default
// endpoint; model defaults to gpt-4o-mini.
func WithOpenAILookup(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiKey = apiKey
		c.openaiBaseURL = baseURL
		c.openaiModel = model
	})
}

// WithLookupProvider sets a custom dictionary lookup backend.
// Takes precedence over WithOpenAILookup.
func WithLookupProvider(p LookupProvider) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = p
	})
}

// WithZoomBounds overrides the zoom limits and step for new sessions.
// Defaults: min 0.4, max 3.0, step 0.1.
func WithZoomBounds(minScale, maxScale, step float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.minScale = minScale
		c.maxScale = maxScale
		c.scaleStep = step
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
