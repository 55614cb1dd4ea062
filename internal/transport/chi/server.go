// Package chi is the HTTP transport: routing, request decoding and the
// mapping from domain sentinel errors to HTTP statuses.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/leitor-app/leitor/internal/domain"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
	annotationuc "github.com/leitor-app/leitor/internal/usecase/annotation"
	documentuc "github.com/leitor-app/leitor/internal/usecase/document"
	healthuc "github.com/leitor-app/leitor/internal/usecase/health"
	lookupuc "github.com/leitor-app/leitor/internal/usecase/lookup"
	vieweruc "github.com/leitor-app/leitor/internal/usecase/viewer"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the use case services behind the HTTP API.
type Server struct {
	documents     *documentuc.Service
	viewer        *vieweruc.Service
	annotations   *annotationuc.Service
	lookups       *lookupuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	viewer *vieweruc.Service,
	annotations *annotationuc.Service,
	lookups *lookupuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents:   documents,
		viewer:      viewer,
		annotations: annotations,
		lookups:     lookups,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrHighlightNotFound, http.StatusNotFound, codeHighlightNotFound),
		sentinelHandler(domain.ErrNoDictionaryResult, http.StatusNotFound, codeNoDictionaryResult),
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, codeInvalidDocument),
		sentinelHandler(domain.ErrPageOutOfRange, http.StatusBadRequest, codePageOutOfRange),
		sentinelHandler(domain.ErrEmptySelection, http.StatusBadRequest, codeEmptySelection),
		sentinelHandler(domain.ErrEmptyNote, http.StatusBadRequest, codeEmptyNote),
		sentinelHandler(domain.ErrNotAnnotated, http.StatusConflict, codeNotAnnotated),
		sentinelHandler(domain.ErrLookupInFlight, http.StatusConflict, codeLookupInFlight),
		sentinelHandler(domain.ErrLookupProviderError, http.StatusBadGateway, codeLookupProvider),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/documents", s.OpenDocument)
		r.Route("/documents/{documentID}", func(r chi.Router) {
			r.Get("/", s.GetDocument)
			r.Delete("/", s.CloseDocument)

			r.Get("/view", s.GetView)
			r.Post("/view/next", s.NextPage)
			r.Post("/view/prev", s.PrevPage)
			r.Post("/view/page", s.GoToPage)
			r.Post("/view/zoom-in", s.ZoomIn)
			r.Post("/view/zoom-out", s.ZoomOut)
			r.Post("/view/mode", s.SetViewMode)

			r.Put("/selection", s.SetSelection)
			r.Delete("/selection", s.ClearSelection)

			r.Get("/highlights", s.ListHighlights)
			r.Post("/highlights", s.AddHighlight)
			r.Post("/annotations", s.Annotate)
			r.Put("/highlights/{highlightID}/comment", s.EditComment)
			r.Delete("/highlights/{highlightID}", s.DeleteHighlight)

			r.Post("/lookup", s.Lookup)
			r.Get("/dictionary", s.GetDictionary)
			r.Delete("/dictionary", s.ClearDictionary)
		})
	})
}

// OpenDocument handles POST /documents. The request body is the raw
// document payload, handed wholesale to the rendering collaborator.
func (s *Server) OpenDocument(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, domdoc.MaxPayloadSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "payload too large or unreadable")
		return
	}

	doc, err := s.documents.Open(r.Context(), r.URL.Query().Get("name"), payload)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+doc.ID())
	writeJSON(w, http.StatusCreated, documentToResponse(&doc))
}

// GetDocument handles GET /documents/{documentID}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// CloseDocument handles DELETE /documents/{documentID}.
func (s *Server) CloseDocument(w http.ResponseWriter, r *http.Request) {
	id := documentID(r)
	if err := s.documents.Close(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.viewer.Drop(id)

	w.WriteHeader(http.StatusNoContent)
}

// GetView handles GET /documents/{documentID}/view.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	view, surfaces, err := s.viewer.View(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// NextPage handles POST /documents/{documentID}/view/next.
func (s *Server) NextPage(w http.ResponseWriter, r *http.Request) {
	view, surfaces, err := s.viewer.Next(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// PrevPage handles POST /documents/{documentID}/view/prev.
func (s *Server) PrevPage(w http.ResponseWriter, r *http.Request) {
	view, surfaces, err := s.viewer.Prev(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// GoToPage handles POST /documents/{documentID}/view/page.
func (s *Server) GoToPage(w http.ResponseWriter, r *http.Request) {
	var req goToPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, surfaces, err := s.viewer.GoTo(r.Context(), documentID(r), req.Page)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// ZoomIn handles POST /documents/{documentID}/view/zoom-in.
func (s *Server) ZoomIn(w http.ResponseWriter, r *http.Request) {
	view, surfaces, err := s.viewer.ZoomIn(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// ZoomOut handles POST /documents/{documentID}/view/zoom-out.
func (s *Server) ZoomOut(w http.ResponseWriter, r *http.Request) {
	view, surfaces, err := s.viewer.ZoomOut(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// SetViewMode handles POST /documents/{documentID}/view/mode.
func (s *Server) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	mode := domview.Mode(req.Mode)
	if !mode.IsValid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "mode must be \"single\" or \"double\"")
		return
	}

	view, surfaces, err := s.viewer.SetMode(r.Context(), documentID(r), mode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view, surfaces))
}

// SetSelection handles PUT /documents/{documentID}/selection.
func (s *Server) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "selection text is required")
		return
	}
	if req.Page < 1 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "selection page must be >= 1")
		return
	}

	if err := s.annotations.SetSelection(r.Context(), documentID(r), req.Text, req.Page); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSelection handles DELETE /documents/{documentID}/selection.
func (s *Server) ClearSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.annotations.ClearSelection(r.Context(), documentID(r)); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHighlights handles GET /documents/{documentID}/highlights.
func (s *Server) ListHighlights(w http.ResponseWriter, r *http.Request) {
	hls, err := s.annotations.List(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]HighlightResponse, len(hls))
	for i := range hls {
		items[i] = highlightToResponse(&hls[i])
	}
	writeJSON(w, http.StatusOK, HighlightListResponse{Items: items, Total: len(items)})
}

// AddHighlight handles POST /documents/{documentID}/highlights.
func (s *Server) AddHighlight(w http.ResponseWriter, r *http.Request) {
	var req addHighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	h, err := s.annotations.AddHighlight(r.Context(), documentID(r), req.Color)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, highlightToResponse(&h))
}

// Annotate handles POST /documents/{documentID}/annotations.
func (s *Server) Annotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	h, err := s.annotations.Annotate(r.Context(), documentID(r), req.Color, req.Note)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, highlightToResponse(&h))
}

// EditComment handles PUT /documents/{documentID}/highlights/{highlightID}/comment.
func (s *Server) EditComment(w http.ResponseWriter, r *http.Request) {
	var req editCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	h, err := s.annotations.EditComment(r.Context(), documentID(r), chi.URLParam(r, "highlightID"), req.Note)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, highlightToResponse(&h))
}

// DeleteHighlight handles DELETE /documents/{documentID}/highlights/{highlightID}.
// Deleting a non-existent highlight still returns 204.
func (s *Server) DeleteHighlight(w http.ResponseWriter, r *http.Request) {
	if err := s.annotations.Delete(r.Context(), documentID(r), chi.URLParam(r, "highlightID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Lookup handles POST /documents/{documentID}/lookup.
func (s *Server) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.lookups.Lookup(r.Context(), documentID(r), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dictionaryToResponse(result))
}

// GetDictionary handles GET /documents/{documentID}/dictionary.
func (s *Server) GetDictionary(w http.ResponseWriter, r *http.Request) {
	result, err := s.lookups.Panel(r.Context(), documentID(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dictionaryToResponse(result))
}

// ClearDictionary handles DELETE /documents/{documentID}/dictionary.
func (s *Server) ClearDictionary(w http.ResponseWriter, r *http.Request) {
	if err := s.lookups.Clear(r.Context(), documentID(r)); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func documentID(r *http.Request) string {
	return chi.URLParam(r, "documentID")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrSessionNotFound,
		domain.ErrHighlightNotFound,
		domain.ErrInvalidDocument,
		domain.ErrPageOutOfRange,
		domain.ErrEmptySelection,
		domain.ErrEmptyNote,
		domain.ErrNotAnnotated,
		domain.ErrLookupInFlight,
		domain.ErrLookupProviderError,
		domain.ErrNoDictionaryResult,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
