package render

import (
	"strings"
	"testing"
)

func TestInvoiceHTML(t *testing.T) {
	html, err := InvoiceHTML(InvoiceData{
		InvoiceNumber: "03F2A1",
		IssueDate:     "01/09/2026",
		DueDate:       "08/09/2026",
		BusinessName:  "Sharma Stores",
		LogoURL:       "https://example.com/logo.png",
		CustomerName:  "Asha",
		Lines: []InvoiceLine{
			{Name: "Rice 5kg", Quantity: 2, UnitPrice: "450.00", Total: "900.00"},
		},
		Total: "900.00",
	})
	if err != nil {
		t.Fatalf("InvoiceHTML: %v", err)
	}

	for _, want := range []string{
		"INV-03F2A1",
		"Sharma Stores",
		"Rice 5kg",
		"900.00",
		`id="invoice-actions"`,
		"https://example.com/logo.png",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered invoice missing %q", want)
		}
	}
}

func TestInvoiceHTMLPlaceholders(t *testing.T) {
	html, err := InvoiceHTML(InvoiceData{CustomerName: "Asha", Total: "0.00"})
	if err != nil {
		t.Fatalf("InvoiceHTML: %v", err)
	}

	// Missing branding renders as explicit placeholders, never as blank
	// sections or broken image tags.
	for _, want := range []string{"Business name not set", "No logo", "No stamp"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered invoice missing placeholder %q", want)
		}
	}
	if strings.Contains(html, `src=""`) {
		t.Error("rendered invoice contains an empty image source")
	}
}

func TestInvoiceHTMLEscapes(t *testing.T) {
	html, err := InvoiceHTML(InvoiceData{
		BusinessName: "<script>alert(1)</script>",
		Total:        "0.00",
	})
	if err != nil {
		t.Fatalf("InvoiceHTML: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("business name was not escaped")
	}
}
