package chi

import (
	"time"

	"github.com/leitor-app/leitor/internal/domain"
	"github.com/leitor-app/leitor/internal/domain/dictionary"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domhl "github.com/leitor-app/leitor/internal/domain/highlight"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeDocumentNotFound   = "document_not_found"
	codeSessionNotFound    = "session_not_found"
	codeHighlightNotFound  = "highlight_not_found"
	codeInvalidDocument    = "invalid_document"
	codePageOutOfRange     = "page_out_of_range"
	codeEmptySelection     = "empty_selection"
	codeEmptyNote          = "empty_note"
	codeNotAnnotated       = "not_annotated"
	codeLookupInFlight     = "lookup_in_flight"
	codeLookupProvider     = "lookup_provider_error"
	codeNoDictionaryResult = "no_dictionary_result"
	codeInternalError      = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DocumentResponse is the document metadata body.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Size       int64     `json:"size"`
	NumPages   int       `json:"num_pages"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// SurfaceResponse is one rendered page surface.
type SurfaceResponse struct {
	Page   int     `json:"page"`
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

// ViewResponse is the view state plus the rendered surfaces.
type ViewResponse struct {
	CurrentPage int               `json:"current_page"`
	NumPages    int               `json:"num_pages"`
	Scale       float64           `json:"scale"`
	Mode        string            `json:"mode"`
	Pages       []SurfaceResponse `json:"pages"`
}

// HighlightResponse is one highlight record.
type HighlightResponse struct {
	ID        string    `json:"id"`
	Page      int       `json:"page"`
	Text      string    `json:"text"`
	Color     string    `json:"color,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Rects     []Rect    `json:"rects"`
}

// Rect mirrors highlight.Rect. Reserved for overlay placement.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HighlightListResponse wraps the newest-first highlight collection.
type HighlightListResponse struct {
	Items []HighlightResponse `json:"items"`
	Total int                 `json:"total"`
}

// DictionaryResponse is the dictionary panel body.
type DictionaryResponse struct {
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning"`
	Synonyms []string `json:"synonyms"`
}

// HealthResponse is the health report body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Request bodies.
type (
	goToPageRequest struct {
		Page int `json:"page"`
	}

	setModeRequest struct {
		Mode string `json:"mode"`
	}

	selectionRequest struct {
		Text string `json:"text"`
		Page int    `json:"page"`
	}

	addHighlightRequest struct {
		Color string `json:"color"`
	}

	annotateRequest struct {
		Color string `json:"color"`
		Note  string `json:"note"`
	}

	editCommentRequest struct {
		Note string `json:"note"`
	}

	lookupRequest struct {
		Text string `json:"text"`
	}
)

func documentToResponse(d *domdoc.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID(),
		Name:       d.Name(),
		Size:       d.Size(),
		NumPages:   d.NumPages(),
		UploadedAt: d.UploadedAt().UTC(),
	}
}

func viewToResponse(v domview.State, surfaces []domain.Surface) ViewResponse {
	pages := make([]SurfaceResponse, len(surfaces))
	for i, s := range surfaces {
		pages[i] = SurfaceResponse{
			Page:   s.Page,
			Scale:  s.Scale,
			Width:  s.Width,
			Height: s.Height,
			Text:   s.Text,
		}
	}
	return ViewResponse{
		CurrentPage: v.CurrentPage(),
		NumPages:    v.NumPages(),
		Scale:       v.Scale(),
		Mode:        string(v.Mode()),
		Pages:       pages,
	}
}

func highlightToResponse(h *domhl.Highlight) HighlightResponse {
	rects := make([]Rect, len(h.Rects()))
	for i, r := range h.Rects() {
		rects[i] = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	return HighlightResponse{
		ID:        h.ID(),
		Page:      h.Page(),
		Text:      h.Text(),
		Color:     h.Color(),
		Comment:   h.Comment(),
		CreatedAt: h.CreatedAt().UTC(),
		Rects:     rects,
	}
}

func dictionaryToResponse(r dictionary.Result) DictionaryResponse {
	synonyms := r.Synonyms()
	if synonyms == nil {
		synonyms = []string{}
	}
	return DictionaryResponse{
		Word:     r.Word(),
		Meaning:  r.Meaning(),
		Synonyms: synonyms,
	}
}
