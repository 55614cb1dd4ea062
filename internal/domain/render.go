package domain

import "context"

// Surface is one rendered page: the page content rasterized at a given
// scale into an independent drawable unit. Each render produces a fresh
// surface, so a late-arriving render can replace an earlier one without
// corrupting state.
type Surface struct {
	Page   int
	Scale  float64
	Width  float64
	Height float64
	Text   string
}

// DocumentHandle is an opened document exposed by the rendering collaborator.
type DocumentHandle interface {
	// NumPages returns the page count.
	NumPages() int
	// RenderPage renders the 1-based page at the given scale.
	RenderPage(ctx context.Context, page int, scale float64) (Surface, error)
}

// Renderer is the rendering collaborator contract. Decoding and
// rasterization happen entirely behind it; callers only decide which pages
// to request and at what scale.
type Renderer interface {
	// Open parses a raw document payload. Returns ErrInvalidDocument
	// (wrapped) when the payload is not a readable document.
	Open(payload []byte) (DocumentHandle, error)
}
