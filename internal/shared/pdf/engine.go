// Package pdf converts rendered HTML into PDF bytes.
package pdf

import "context"

// Engine renders an HTML document to PDF.
type Engine interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}
