package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/leitor-app/leitor/internal/config"
	"github.com/leitor-app/leitor/internal/domain/viewer"
	logpkg "github.com/leitor-app/leitor/internal/logger"
	"github.com/leitor-app/leitor/internal/metrics"
	documentrepo "github.com/leitor-app/leitor/internal/repository/document"
	highlightrepo "github.com/leitor-app/leitor/internal/repository/highlight"
	sessionrepo "github.com/leitor-app/leitor/internal/repository/session"
	chiTransport "github.com/leitor-app/leitor/internal/transport/chi"
	openaiLookup "github.com/leitor-app/leitor/internal/transport/openai"
	pdfTransport "github.com/leitor-app/leitor/internal/transport/pdf"
	annotationuc "github.com/leitor-app/leitor/internal/usecase/annotation"
	documentuc "github.com/leitor-app/leitor/internal/usecase/document"
	healthuc "github.com/leitor-app/leitor/internal/usecase/health"
	lookupuc "github.com/leitor-app/leitor/internal/usecase/lookup"
	vieweruc "github.com/leitor-app/leitor/internal/usecase/viewer"
	"github.com/leitor-app/leitor/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting leitor API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("lookup_model", cfg.Lookup.Model),
	)

	// Register lookup/render metrics explicitly (no init())
	metrics.RegisterLookupMetrics()

	// Rendering collaborator and lookup provider — composition root
	renderer := pdfTransport.NewRenderer(logger)
	lookupClient := openaiLookup.NewClient(&openaiLookup.Config{
		APIKey:  cfg.Lookup.APIKey,
		BaseURL: cfg.Lookup.BaseURL,
		Model:   cfg.Lookup.Model,
		Timeout: time.Duration(cfg.Lookup.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Repositories — all in-memory, the reader's state does not survive a restart
	docRepo := documentrepo.New()
	sessRepo := sessionrepo.New()
	hlRepo := highlightrepo.New()

	// Use case services
	bounds := viewer.Bounds{
		MinScale: cfg.Viewer.MinScale,
		MaxScale: cfg.Viewer.MaxScale,
		Step:     cfg.Viewer.ScaleStep,
	}
	docSvc := documentuc.New(docRepo, sessRepo, hlRepo, renderer).WithZoomBounds(bounds)
	viewSvc := vieweruc.New(sessRepo, docRepo)
	annSvc := annotationuc.New(hlRepo, sessRepo)
	lookupSvc := lookupuc.New(sessRepo, lookupClient)
	healthSvc := healthuc.New(lookupClient)

	// Create chi server
	server := chiTransport.NewServer(docSvc, viewSvc, annSvc, lookupSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer converts panics into a JSON 500 instead of chi's plain
// text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				logger.Error("panic recovered",
					zap.Any("panic", rvr),
					zap.String("path", r.URL.Path),
					zap.Stack("stacktrace"),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "internal_error",
					"message": "internal error",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware attaches a request-scoped logger to the context,
// echoes X-Request-ID, and emits one canonical log line per request.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}
