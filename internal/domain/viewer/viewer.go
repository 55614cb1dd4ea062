// Package viewer models the page/zoom/view-mode state of a reading session.
// All transitions clamp instead of wrapping or failing, so any sequence of
// actions keeps the state within bounds.
package viewer

import (
	"fmt"
	"math"
)

// Mode is the page layout mode.
type Mode string

// View mode constants.
const (
	// Single shows one page at a time.
	Single Mode = "single"
	// Double shows an odd/even pair starting at the current page.
	Double Mode = "double"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Single || m == Double
}

// Default zoom bounds and step.
const (
	DefaultMinScale = 0.4
	DefaultMaxScale = 3.0
	DefaultStep     = 0.1
)

// Bounds holds the zoom limits and step size.
type Bounds struct {
	MinScale float64
	MaxScale float64
	Step     float64
}

// DefaultBounds returns the standard zoom bounds [0.4, 3.0] stepped by 0.1.
func DefaultBounds() Bounds {
	return Bounds{MinScale: DefaultMinScale, MaxScale: DefaultMaxScale, Step: DefaultStep}
}

// State is the view state of one loaded document (immutable value object).
// currentPage always satisfies 1 <= currentPage <= numPages.
type State struct {
	currentPage int
	numPages    int
	scale       float64
	mode        Mode
	bounds      Bounds
}

// New creates a view state for a freshly loaded document: page 1,
// scale 1.0, single-page mode.
func New(numPages int, bounds Bounds) (State, error) {
	if numPages < 1 {
		return State{}, fmt.Errorf("document must have at least one page, got %d", numPages)
	}
	if bounds.MinScale <= 0 || bounds.MaxScale < bounds.MinScale || bounds.Step <= 0 {
		return State{}, fmt.Errorf("invalid zoom bounds: min=%g max=%g step=%g",
			bounds.MinScale, bounds.MaxScale, bounds.Step)
	}
	return State{
		currentPage: 1,
		numPages:    numPages,
		scale:       clampScale(1.0, bounds),
		mode:        Single,
		bounds:      bounds,
	}, nil
}

// CurrentPage returns the 1-based current page.
func (s State) CurrentPage() int { return s.currentPage }

// NumPages returns the total page count.
func (s State) NumPages() int { return s.numPages }

// Scale returns the zoom scale.
func (s State) Scale() float64 { return s.scale }

// Mode returns the page layout mode.
func (s State) Mode() Mode { return s.mode }

// pageDelta is 2 in double mode so the visible pair stays aligned.
func (s State) pageDelta() int {
	if s.mode == Double {
		return 2
	}
	return 1
}

// Next advances by one page (single mode) or two (double mode), clamped
// at the last page.
func (s State) Next() State {
	return s.GoTo(s.currentPage + s.pageDelta())
}

// Prev retreats by one page (single mode) or two (double mode), clamped
// at the first page.
func (s State) Prev() State {
	return s.GoTo(s.currentPage - s.pageDelta())
}

// GoTo jumps to the given page, clamped into [1, numPages].
func (s State) GoTo(page int) State {
	if page < 1 {
		page = 1
	}
	if page > s.numPages {
		page = s.numPages
	}
	s.currentPage = page
	return s
}

// ZoomIn increases the scale by one step, clamped at the maximum.
func (s State) ZoomIn() State {
	s.scale = clampScale(s.scale+s.bounds.Step, s.bounds)
	return s
}

// ZoomOut decreases the scale by one step, clamped at the minimum.
func (s State) ZoomOut() State {
	s.scale = clampScale(s.scale-s.bounds.Step, s.bounds)
	return s
}

// WithMode switches the layout mode. The current page is kept as-is.
func (s State) WithMode(m Mode) (State, error) {
	if !m.IsValid() {
		return State{}, fmt.Errorf("unknown view mode %q", m)
	}
	s.mode = m
	return s, nil
}

// VisiblePages returns the pages to render for the current state: one page
// in single mode, the current pair in double mode. The second page of the
// pair is suppressed when it would fall past the last page.
func (s State) VisiblePages() []int {
	if s.mode == Double && s.currentPage+1 <= s.numPages {
		return []int{s.currentPage, s.currentPage + 1}
	}
	return []int{s.currentPage}
}

// clampScale snaps the scale onto the step grid (one-decimal rounding for
// the 0.1 default step) and clamps it into the bounds. Repeated zoom
// actions would otherwise drift off the grid by float error.
func clampScale(scale float64, b Bounds) float64 {
	scale = math.Round(scale/b.Step) * b.Step
	scale = math.Round(scale*1e9) / 1e9
	if scale < b.MinScale {
		return b.MinScale
	}
	if scale > b.MaxScale {
		return b.MaxScale
	}
	return scale
}
