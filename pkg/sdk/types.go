package leitor

import (
	"time"

	"github.com/leitor-app/leitor/internal/domain"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domhl "github.com/leitor-app/leitor/internal/domain/highlight"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
)

// ViewMode is the page layout mode.
type ViewMode string

// View mode constants.
const (
	ModeSingle ViewMode = "single"
	ModeDouble ViewMode = "double"
)

// Document is an opened document's metadata.
type Document struct {
	ID         string
	Name       string
	Size       int64
	NumPages   int
	UploadedAt time.Time
}

// Surface is one rendered page.
type Surface struct {
	Page   int
	Scale  float64
	Width  float64
	Height float64
	Text   string
}

// View is the view state plus the rendered surfaces for the visible pages.
type View struct {
	CurrentPage int
	NumPages    int
	Scale       float64
	Mode        ViewMode
	Pages       []Surface
}

// Highlight is one highlight record, optionally carrying a note.
type Highlight struct {
	ID        string
	Page      int
	Text      string
	Color     string
	Comment   string
	CreatedAt time.Time
}

// DictionaryEntry is one word-lookup result.
type DictionaryEntry struct {
	Word     string
	Meaning  string
	Synonyms []string
}

// NotFound reports whether the entry is the lookup fallback.
func (e DictionaryEntry) NotFound() bool {
	return e.Meaning == "Não foi possível encontrar a definição."
}

func fromInternalDocument(d domdoc.Document) Document {
	return Document{
		ID:         d.ID(),
		Name:       d.Name(),
		Size:       d.Size(),
		NumPages:   d.NumPages(),
		UploadedAt: d.UploadedAt(),
	}
}

func fromInternalView(v domview.State, surfaces []domain.Surface) View {
	pages := make([]Surface, len(surfaces))
	for i, s := range surfaces {
		pages[i] = Surface{
			Page:   s.Page,
			Scale:  s.Scale,
			Width:  s.Width,
			Height: s.Height,
			Text:   s.Text,
		}
	}
	return View{
		CurrentPage: v.CurrentPage(),
		NumPages:    v.NumPages(),
		Scale:       v.Scale(),
		Mode:        ViewMode(v.Mode()),
		Pages:       pages,
	}
}

func fromInternalHighlight(h domhl.Highlight) Highlight {
	return Highlight{
		ID:        h.ID(),
		Page:      h.Page(),
		Text:      h.Text(),
		Color:     h.Color(),
		Comment:   h.Comment(),
		CreatedAt: h.CreatedAt(),
	}
}
