package highlight

import (
	"fmt"
	"strings"
	"time"
)

// MaxTextSize is the maximum selected text span size in bytes.
const MaxTextSize = 16384 // 16KB

// Rect is a page-space rectangle for overlay placement.
// Reserved: nothing populates or consumes rects yet.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Highlight is a user annotation tying a text span and page to a color
// and an optional note (immutable value object).
type Highlight struct {
	id        string
	page      int
	text      string
	color     string
	comment   string
	createdAt time.Time
	rects     []Rect
}

// New validates and creates a Highlight without a comment.
// Text: non-empty after trimming, max 16KB. Page: >= 1.
func New(id string, page int, text, color string, createdAt time.Time) (Highlight, error) {
	if id == "" {
		return Highlight{}, fmt.Errorf("highlight ID is required")
	}
	if page < 1 {
		return Highlight{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if strings.TrimSpace(text) == "" {
		return Highlight{}, fmt.Errorf("highlighted text is required")
	}
	if len(text) > MaxTextSize {
		return Highlight{}, fmt.Errorf("highlighted text too large (max %d bytes)", MaxTextSize)
	}

	return Highlight{
		id:        id,
		page:      page,
		text:      text,
		color:     color,
		createdAt: createdAt,
	}, nil
}

// Reconstruct creates a Highlight without validation (store hydration).
func Reconstruct(id string, page int, text, color, comment string, createdAt time.Time, rects []Rect) Highlight {
	return Highlight{id: id, page: page, text: text, color: color, comment: comment, createdAt: createdAt, rects: rects}
}

// ID returns the highlight identifier.
func (h Highlight) ID() string { return h.id }

// Page returns the 1-based page number the highlight belongs to.
func (h Highlight) Page() int { return h.page }

// Text returns the selected text span the highlight was created from.
func (h Highlight) Text() string { return h.text }

// Color returns the visual treatment tag.
func (h Highlight) Color() string { return h.color }

// Comment returns the free-text note, empty when the highlight is not annotated.
func (h Highlight) Comment() string { return h.comment }

// HasComment reports whether the highlight carries a note, which is what
// distinguishes a plain highlight from an annotation.
func (h Highlight) HasComment() bool { return h.comment != "" }

// CreatedAt returns the creation time, used only for newest-first ordering.
func (h Highlight) CreatedAt() time.Time { return h.createdAt }

// Rects returns the overlay rectangles. Always empty in current behavior.
func (h Highlight) Rects() []Rect { return h.rects }

// WithComment returns a copy with only the comment replaced.
// ID, page, text, color and creation time are preserved.
func (h Highlight) WithComment(comment string) Highlight {
	return Highlight{
		id:        h.id,
		page:      h.page,
		text:      h.text,
		color:     h.color,
		comment:   comment,
		createdAt: h.createdAt,
		rects:     h.rects,
	}
}
