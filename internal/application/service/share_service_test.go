package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/apperror"
	"mims-console/pkg/render"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare ten digits", "9876543210", "919876543210", false},
		{"spaces and dashes", "98765 432-10", "919876543210", false},
		{"international form", "+91 98765 43210", "919876543210", false},
		{"already prefixed", "919876543210", "919876543210", false},
		{"empty", "", "", true},
		{"punctuation only", "--- ", "", true},
		{"too short", "12345", "", true},
		{"wrong prefix", "929876543210", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in, "91")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizePhone(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// stubSurface yields a real JPEG so the PDF packaging stage succeeds.
type stubSurface struct{ opened *bool }

func (s stubSurface) HideActions() error { return nil }
func (s stubSurface) RestoreActions()    {}
func (s stubSurface) Close() error       { return nil }
func (s stubSurface) Capture(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 56)), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type stubOpener struct{ opened bool }

func (o *stubOpener) OpenSurface(ctx context.Context, html string) (render.Surface, error) {
	o.opened = true
	return stubSurface{opened: &o.opened}, nil
}

func testDocument() entity.InvoiceDocument {
	return entity.InvoiceDocument{
		InvoiceNumber: "A8B9C0",
		Business:      entity.BusinessProfile{BusinessName: "Sharma Stores"},
		Customer:      entity.Customer{Name: "Asha", Mobile: "9876543210"},
		Lines: []entity.BillLine{
			{ProductName: "Rice 5kg", UnitPrice: 45000, Quantity: 2, LineTotal: 90000},
		},
		Total: 90000,
	}
}

func newTestShareService(uploadURL string, opener render.SurfaceOpener) *ShareService {
	return NewShareService(
		NewExportService(opener),
		&http.Client{},
		uploadURL,
		"91",
		"Hello {name}, invoice from {business}: {url}",
	)
}

func TestSharePipeline(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("upload method = %s", r.Method)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("upload missing file part: %v", err)
		}
		w.Write([]byte(`{"status":"success","data":{"url":"https://tmpfiles.org/12345/invoice.pdf"}}`))
	}))
	defer host.Close()

	s := newTestShareService(host.URL, &stubOpener{})
	out, err := s.Share(context.Background(), testDocument(), render.PageA4)
	if err != nil {
		t.Fatalf("Share: %v", err)
	}

	if out.FileURL != "https://tmpfiles.org/dl/12345/invoice.pdf" {
		t.Errorf("file url not rewritten for direct download: %q", out.FileURL)
	}
	if !strings.HasPrefix(out.WaLink, "https://wa.me/919876543210?text=") {
		t.Errorf("wa link = %q", out.WaLink)
	}
	if !strings.Contains(out.WaLink, "tmpfiles.org%2Fdl%2F12345") {
		t.Errorf("message does not carry the encoded download url: %q", out.WaLink)
	}
	if !strings.Contains(out.WaLink, "Asha") {
		t.Errorf("message does not address the customer: %q", out.WaLink)
	}
}

func TestShareUploadFailure(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer host.Close()

	s := newTestShareService(host.URL, &stubOpener{})
	_, err := s.Share(context.Background(), testDocument(), render.PageA4)
	if !apperror.IsKind(err, apperror.KindUploadFailed) {
		t.Errorf("got %v, want upload failed", err)
	}
}

func TestShareUnexpectedHostResponse(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer host.Close()

	s := newTestShareService(host.URL, &stubOpener{})
	_, err := s.Share(context.Background(), testDocument(), render.PageA4)
	if !apperror.IsKind(err, apperror.KindUploadFailed) {
		t.Errorf("got %v, want upload failed", err)
	}
}

func TestShareInvalidPhoneShortCircuits(t *testing.T) {
	opener := &stubOpener{}
	s := newTestShareService("http://127.0.0.1:1", opener)

	doc := testDocument()
	doc.Customer.Mobile = "12"
	_, err := s.Share(context.Background(), doc, render.PageA4)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	if opener.opened {
		t.Error("render ran despite an invalid phone number")
	}
}
