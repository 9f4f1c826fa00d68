package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"
)

func TestParsePageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PageFormat
		wantErr bool
	}{
		{"a4", PageA4, false},
		{"a5", PageA5, false},
		{"", PageA4, false},
		{"letter", "", true},
		{"A4", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePageFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePageFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePageFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPageHeightMM(t *testing.T) {
	// A4-proportioned bitmap on an A5 page keeps the aspect ratio.
	got := PageHeightMM(1000, 1414, 148)
	want := 1414.0 * 148 / 1000
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PageHeightMM = %v, want %v", got, want)
	}

	// A square bitmap yields a square page.
	if got := PageHeightMM(500, 500, 210); got != 210 {
		t.Errorf("square bitmap: height = %v, want 210", got)
	}
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestPackagePDF(t *testing.T) {
	pdf, err := PackagePDF(testJPEG(t, 100, 141), PageA4)
	if err != nil {
		t.Fatalf("PackagePDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("PackagePDF returned empty output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", pdf[:8])
	}
}

func TestPackagePDFRejectsGarbage(t *testing.T) {
	if _, err := PackagePDF([]byte("not a jpeg"), PageA4); err == nil {
		t.Error("PackagePDF accepted a non-JPEG payload")
	}
}
