package service

import (
	"context"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/apperror"
	"mims-console/pkg/money"
	"mims-console/pkg/render"
)

// invoiceDateLayout matches the day-first date format the invoice shows.
const invoiceDateLayout = "02/01/2006"

// ExportService renders composed invoice documents into PDF files.
type ExportService struct {
	exporter *render.Exporter
}

// NewExportService creates a new export service
func NewExportService(opener render.SurfaceOpener) *ExportService {
	return &ExportService{exporter: render.NewExporter(opener)}
}

// Export renders the document to a single-page PDF in the given format.
func (s *ExportService) Export(ctx context.Context, doc entity.InvoiceDocument, format render.PageFormat) ([]byte, error) {
	html, err := render.InvoiceHTML(invoiceView(doc))
	if err != nil {
		return nil, apperror.NewRenderError("Could not build the invoice layout")
	}
	return s.exporter.Render(ctx, html, format)
}

// invoiceView flattens the document into the template's view model, with
// all amounts and dates pre-formatted.
func invoiceView(doc entity.InvoiceDocument) render.InvoiceData {
	lines := make([]render.InvoiceLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, render.InvoiceLine{
			Name:      l.ProductName,
			Quantity:  l.Quantity,
			UnitPrice: money.Format(l.UnitPrice),
			Total:     money.Format(l.LineTotal),
		})
	}
	return render.InvoiceData{
		InvoiceNumber:   doc.InvoiceNumber,
		IssueDate:       doc.IssueDate.Format(invoiceDateLayout),
		DueDate:         doc.DueDate.Format(invoiceDateLayout),
		BusinessName:    doc.Business.BusinessName,
		BusinessAddress: doc.Business.BusinessAddress,
		BusinessPhone:   doc.Business.BusinessMobile,
		BusinessEmail:   doc.Business.BusinessEmail,
		LogoURL:         doc.Business.LogoURL,
		StampURL:        doc.Business.StampURL,
		CustomerName:    doc.Customer.Name,
		CustomerMobile:  doc.Customer.Mobile,
		CustomerEmail:   doc.Customer.Email,
		Lines:           lines,
		Total:           money.Format(doc.Total),
	}
}
