package render

import (
	"context"

	"mims-console/pkg/apperror"
)

// Surface is an open visual rendering of an invoice document. The action
// controls embedded in the layout (download/share buttons) must not
// appear in the captured bitmap.
type Surface interface {
	// HideActions hides the interactive controls before capture.
	HideActions() error
	// RestoreActions makes the controls visible again. It must be safe
	// to call after a failed capture.
	RestoreActions()
	// Capture rasterizes the full surface to a JPEG bitmap.
	Capture(ctx context.Context) ([]byte, error)
	// Close releases the surface.
	Close() error
}

// SurfaceOpener opens a Surface for an HTML document.
type SurfaceOpener interface {
	OpenSurface(ctx context.Context, html string) (Surface, error)
}

// Exporter turns a composed invoice document into a paginated PDF:
// rasterize the layout, then embed the bitmap into a fixed-format page.
type Exporter struct {
	opener SurfaceOpener
}

// NewExporter creates an exporter over the given surface opener.
func NewExporter(opener SurfaceOpener) *Exporter {
	return &Exporter{opener: opener}
}

// Render rasterizes html and packages the bitmap as a single-page PDF.
// The hide/restore of action controls is a scoped resource: restore runs
// on every exit path, so a capture failure cannot leave the controls
// permanently hidden. No partial file is returned on failure.
func (e *Exporter) Render(ctx context.Context, html string, format PageFormat) ([]byte, error) {
	surface, err := e.opener.OpenSurface(ctx, html)
	if err != nil {
		return nil, apperror.NewRenderError("Could not open the invoice document for rendering")
	}
	defer surface.Close()

	if err := surface.HideActions(); err != nil {
		return nil, apperror.NewRenderError("Could not prepare the invoice document for capture")
	}
	defer surface.RestoreActions()

	img, err := surface.Capture(ctx)
	if err != nil {
		return nil, apperror.NewRenderError("Invoice rasterization failed")
	}

	pdf, err := PackagePDF(img, format)
	if err != nil {
		return nil, apperror.NewRenderError("Invoice PDF packaging failed")
	}
	return pdf, nil
}
