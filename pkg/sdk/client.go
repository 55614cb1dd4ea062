package leitor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leitor-app/leitor/internal/domain"
	"github.com/leitor-app/leitor/internal/domain/dictionary"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domhl "github.com/leitor-app/leitor/internal/domain/highlight"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
	docrepo "github.com/leitor-app/leitor/internal/repository/document"
	hlrepo "github.com/leitor-app/leitor/internal/repository/highlight"
	sessrepo "github.com/leitor-app/leitor/internal/repository/session"
	openaiTransport "github.com/leitor-app/leitor/internal/transport/openai"
	pdfTransport "github.com/leitor-app/leitor/internal/transport/pdf"
	annotationuc "github.com/leitor-app/leitor/internal/usecase/annotation"
	documentuc "github.com/leitor-app/leitor/internal/usecase/document"
	healthuc "github.com/leitor-app/leitor/internal/usecase/health"
	lookupuc "github.com/leitor-app/leitor/internal/usecase/lookup"
	vieweruc "github.com/leitor-app/leitor/internal/usecase/viewer"
)

const defaultLookupModel = "gpt-4o-mini"

// Internal interfaces so services can be substituted in tests.
type documentUseCase interface {
	Open(ctx context.Context, name string, payload []byte) (domdoc.Document, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Close(ctx context.Context, id string) error
}

type viewerUseCase interface {
	View(ctx context.Context, documentID string) (domview.State, []domain.Surface, error)
	Next(ctx context.Context, documentID string) (domview.State, []domain.Surface, error)
	Prev(ctx context.Context, documentID string) (domview.State, []domain.Surface, error)
	GoTo(ctx context.Context, documentID string, page int) (domview.State, []domain.Surface, error)
	ZoomIn(ctx context.Context, documentID string) (domview.State, []domain.Surface, error)
	ZoomOut(ctx context.Context, documentID string) (domview.State, []domain.Surface, error)
	SetMode(ctx context.Context, documentID string, mode domview.Mode) (domview.State, []domain.Surface, error)
	Drop(documentID string)
}

type annotationUseCase interface {
	SetSelection(ctx context.Context, documentID, text string, page int) error
	ClearSelection(ctx context.Context, documentID string) error
	AddHighlight(ctx context.Context, documentID, color string) (domhl.Highlight, error)
	Annotate(ctx context.Context, documentID, color, note string) (domhl.Highlight, error)
	EditComment(ctx context.Context, documentID, id, note string) (domhl.Highlight, error)
	List(ctx context.Context, documentID string) ([]domhl.Highlight, error)
	Delete(ctx context.Context, documentID, id string) error
}

type lookupUseCase interface {
	Lookup(ctx context.Context, documentID, text string) (dictionary.Result, error)
	Panel(ctx context.Context, documentID string) (dictionary.Result, error)
	Clear(ctx context.Context, documentID string) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the leitor SDK entry point. All state is in-process.
type Client struct {
	docSvc    documentUseCase
	viewSvc   viewerUseCase
	annSvc    annotationUseCase
	lookupSvc lookupUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a leitor Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		minScale:  domview.DefaultMinScale,
		maxScale:  domview.DefaultMaxScale,
		scaleStep: domview.DefaultStep,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.minScale <= 0 || cfg.maxScale < cfg.minScale || cfg.scaleStep <= 0 {
		return nil, fmt.Errorf("leitor: invalid zoom bounds: min=%g max=%g step=%g",
			cfg.minScale, cfg.maxScale, cfg.scaleStep)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	docs := docrepo.New()
	sessions := sessrepo.New()
	highlights := hlrepo.New()

	lookupClient, checker := createLookup(cfg)

	renderer := pdfTransport.NewRenderer(zap.NewNop())
	docSvc := documentuc.New(docs, sessions, highlights, renderer).
		WithZoomBounds(domview.Bounds{
			MinScale: cfg.minScale,
			MaxScale: cfg.maxScale,
			Step:     cfg.scaleStep,
		})
	viewSvc := vieweruc.New(sessions, docs)
	annSvc := annotationuc.New(highlights, sessions)
	lookupSvc := lookupuc.New(sessions, lookupClient)
	healthSvc := healthuc.New(checker)

	return &Client{
		docSvc:    docSvc,
		viewSvc:   viewSvc,
		annSvc:    annSvc,
		lookupSvc: lookupSvc,
		healthSvc: healthSvc,
		obs:       obs,
	}
}

// createLookup resolves the lookup backend: a custom provider, the
// OpenAI-compatible client, or a noop that errors on use.
func createLookup(cfg *clientConfig) (domain.LookupClient, healthuc.LookupChecker) {
	if cfg.provider != nil {
		adapter := &providerAdapter{inner: cfg.provider}
		if checker, ok := cfg.provider.(healthuc.LookupChecker); ok {
			return adapter, checker
		}
		return adapter, nil
	}

	if cfg.openaiKey != "" {
		model := cfg.openaiModel
		if model == "" {
			model = defaultLookupModel
		}
		client := openaiTransport.NewClient(&openaiTransport.Config{
			APIKey:  cfg.openaiKey,
			BaseURL: cfg.openaiBaseURL,
			Model:   model,
			Logger:  zap.NewNop(),
		})
		return client, client
	}

	return noopLookup{}, nil
}

// Documents returns the document lifecycle service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{docSvc: c.docSvc, viewSvc: c.viewSvc, obs: c.obs}
}

// Viewer returns the paging and zoom service for an open document.
func (c *Client) Viewer(documentID string) *ViewerService {
	return &ViewerService{documentID: documentID, svc: c.viewSvc, obs: c.obs}
}

// Annotations returns the highlight service for an open document.
func (c *Client) Annotations(documentID string) *AnnotationService {
	return &AnnotationService{documentID: documentID, svc: c.annSvc, obs: c.obs}
}

// Lookup returns the dictionary service for an open document.
func (c *Client) Lookup(documentID string) *LookupService {
	return &LookupService{documentID: documentID, svc: c.lookupSvc, obs: c.obs}
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component to "ok"/"error"
}

// Health checks the lookup provider, the only external dependency.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// providerAdapter wraps a public LookupProvider to satisfy the internal
// lookup client contract.
type providerAdapter struct {
	inner LookupProvider
}

func (a *providerAdapter) Lookup(ctx context.Context, text string) (dictionary.Result, error) {
	e, err := a.inner.Lookup(ctx, text)
	if err != nil {
		return dictionary.Result{}, fmt.Errorf("lookup: %w", err)
	}
	return dictionary.New(e.Word, e.Meaning, e.Synonyms), nil
}

// noopLookup returns an error on Lookup (used when no backend configured).
type noopLookup struct{}

func (noopLookup) Lookup(_ context.Context, _ string) (dictionary.Result, error) {
	return dictionary.Result{}, errors.New(
		"leitor: lookup backend not configured (use WithOpenAILookup or WithLookupProvider)",
	)
}
