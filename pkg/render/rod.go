package render

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Invoice layout is designed at this CSS width; the device scale factor
// multiplies it into the bitmap resolution.
const surfaceViewportWidth = 820

// RodOpener rasterizes documents with a headless browser. Each surface
// gets its own browser so a crashed render cannot poison later exports.
type RodOpener struct {
	scale   float64
	quality int
}

// NewRodOpener creates an opener rendering at the given device scale
// factor and JPEG quality (0-100).
func NewRodOpener(scale float64, quality int) *RodOpener {
	return &RodOpener{scale: scale, quality: quality}
}

// OpenSurface launches a headless browser and loads the document.
func (o *RodOpener) OpenSurface(ctx context.Context, html string) (Surface, error) {
	u, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("render: launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("render: connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("render: open page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             surfaceViewportWidth,
		Height:            600,
		DeviceScaleFactor: o.scale,
	}); err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("render: set viewport: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("render: load document: %w", err)
	}
	// Let images (logo/stamp) settle before capture.
	if err := page.WaitStable(300 * time.Millisecond); err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("render: wait for document: %w", err)
	}

	return &rodSurface{browser: browser, page: page, quality: o.quality}, nil
}

type rodSurface struct {
	browser *rod.Browser
	page    *rod.Page
	quality int
}

func (s *rodSurface) HideActions() error {
	_, err := s.page.Eval(`() => {
		const el = document.querySelector('#invoice-actions');
		if (el) el.style.display = 'none';
	}`)
	return err
}

func (s *rodSurface) RestoreActions() {
	_, _ = s.page.Eval(`() => {
		const el = document.querySelector('#invoice-actions');
		if (el) el.style.display = 'flex';
	}`)
}

func (s *rodSurface) Capture(ctx context.Context) ([]byte, error) {
	quality := s.quality
	return s.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: &quality,
	})
}

func (s *rodSurface) Close() error {
	return s.browser.Close()
}
