// Package pdf adapts the ledongthuc/pdf library to the rendering
// collaborator contract. All decoding happens inside the library; this
// adapter only opens payloads and renders single pages on request.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/leitor-app/leitor/internal/domain"
	"github.com/leitor-app/leitor/internal/metrics"
)

// US Letter, used when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Renderer opens PDF payloads.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a PDF renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Open parses a raw PDF payload and returns a handle exposing the page
// count and per-page rendering.
func (r *Renderer) Open(payload []byte) (domain.DocumentHandle, error) {
	reader, err := open(payload)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %v: %w", err, domain.ErrInvalidDocument)
	}
	return &handle{reader: reader, numPages: reader.NumPage(), logger: r.logger}, nil
}

// open isolates the library call. The parser panics on some malformed
// files instead of returning an error, so the panic is converted here.
func open(payload []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
}

// handle is an opened PDF document.
type handle struct {
	reader   *pdf.Reader
	numPages int
	logger   *zap.Logger
}

// NumPages returns the page count.
func (h *handle) NumPages() int { return h.numPages }

// RenderPage renders one page at the given scale into a fresh surface:
// the page's plain text plus its media-box dimensions multiplied by the
// scale.
func (h *handle) RenderPage(ctx context.Context, page int, scale float64) (domain.Surface, error) {
	if err := ctx.Err(); err != nil {
		return domain.Surface{}, fmt.Errorf("render page %d: %w", page, err)
	}
	if page < 1 || page > h.numPages {
		return domain.Surface{}, fmt.Errorf("page %d of %d: %w", page, h.numPages, domain.ErrPageOutOfRange)
	}

	start := time.Now()

	text, err := extractText(h.reader.Page(page))
	if err != nil {
		metrics.PageRendersTotal.WithLabelValues("error").Inc()
		return domain.Surface{}, fmt.Errorf("extract page %d text: %v: %w", page, err, domain.ErrInvalidDocument)
	}

	width, height := pageSize(h.reader.Page(page))

	metrics.PageRendersTotal.WithLabelValues("success").Inc()
	metrics.PageRenderDuration.Observe(time.Since(start).Seconds())

	return domain.Surface{
		Page:   page,
		Scale:  scale,
		Width:  width * scale,
		Height: height * scale,
		Text:   text,
	}, nil
}

func extractText(p pdf.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()
	if p.V.IsNull() {
		return "", fmt.Errorf("page object is null")
	}
	return p.GetPlainText(nil)
}

// pageSize resolves the page's MediaBox, walking up the page tree since
// the attribute is inheritable.
func pageSize(p pdf.Page) (width, height float64) {
	v := p.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			w := mb.Index(2).Float64() - mb.Index(0).Float64()
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
