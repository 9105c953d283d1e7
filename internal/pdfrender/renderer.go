package pdfrender

import (
	"context"
	"errors"
)

// ErrUnavailable means no PDF renderer is configured; callers fall back to
// HTML-only output.
var ErrUnavailable = errors.New("pdf rendering unavailable")

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

// Noop is the placeholder renderer: generated documents stay browser-printable
// HTML and the print button does the rest.
type Noop struct{}

// RenderHTML always returns ErrUnavailable.
func (Noop) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	_ = ctx
	_ = html
	return nil, ErrUnavailable
}
