package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/signintech/gopdf"
)

// PageFormat is the physical page the invoice bitmap is packaged onto.
// The original UI used A4 on one call site and A5 on another for the same
// document, so the format is a parameter rather than a constant.
type PageFormat string

const (
	PageA4 PageFormat = "a4"
	PageA5 PageFormat = "a5"
)

// ParsePageFormat validates a page format string.
func ParsePageFormat(s string) (PageFormat, error) {
	switch PageFormat(s) {
	case PageA4, PageA5:
		return PageFormat(s), nil
	case "":
		return PageA4, nil
	default:
		return "", fmt.Errorf("render: unknown page format %q", s)
	}
}

// WidthMM returns the page width in millimetres.
func (f PageFormat) WidthMM() float64 {
	switch f {
	case PageA5:
		return 148
	default:
		return 210
	}
}

// PageHeightMM computes the page height that preserves the bitmap's
// aspect ratio when the image is scaled to fill the page width.
func PageHeightMM(imgWidth, imgHeight int, pageWidthMM float64) float64 {
	return float64(imgHeight) * pageWidthMM / float64(imgWidth)
}

// PackagePDF embeds a JPEG bitmap into a single-page PDF. The image
// fills the page width; page height follows the aspect ratio.
func PackagePDF(jpegData []byte, format PageFormat) ([]byte, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(jpegData))
	if err != nil {
		return nil, fmt.Errorf("render: decode bitmap: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("render: empty bitmap")
	}

	pageW := format.WidthMM()
	pageH := PageHeightMM(cfg.Width, cfg.Height, pageW)

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{Unit: gopdf.UnitMM, PageSize: gopdf.Rect{W: pageW, H: pageH}})
	pdf.AddPage()

	holder, err := gopdf.ImageHolderByBytes(jpegData)
	if err != nil {
		return nil, fmt.Errorf("render: load bitmap: %w", err)
	}
	if err := pdf.ImageByHolder(holder, 0, 0, &gopdf.Rect{W: pageW, H: pageH}); err != nil {
		return nil, fmt.Errorf("render: place bitmap: %w", err)
	}

	return pdf.GetBytesPdf(), nil
}
