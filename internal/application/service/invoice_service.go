package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mims-console/internal/domain/entity"
)

// paymentTermDays is how far the due date sits past the bill date.
const paymentTermDays = 7

// InvoiceService composes renderable invoice documents from bill data
// plus branding. Pure assembly, no I/O, so the same inputs always yield
// the same document.
type InvoiceService struct{}

// NewInvoiceService creates a new invoice service
func NewInvoiceService() *InvoiceService {
	return &InvoiceService{}
}

// Compose builds the invoice document for a set of lines under a business
// profile. The total is re-reduced from the lines.
func (s *InvoiceService) Compose(profile entity.BusinessProfile, customer entity.Customer, lines []entity.BillLine, meta entity.BillMeta) entity.InvoiceDocument {
	var total int64
	for _, l := range lines {
		total += l.LineTotal
	}
	return entity.InvoiceDocument{
		InvoiceNumber: InvoiceNumber(meta.ID),
		IssueDate:     meta.BillDate,
		DueDate:       meta.BillDate.AddDate(0, 0, paymentTermDays),
		Business:      profile,
		Customer:      customer,
		Lines:         lines,
		Total:         total,
	}
}

// ComposeFromBill builds the invoice document for a persisted bill.
func (s *InvoiceService) ComposeFromBill(profile entity.BusinessProfile, bill entity.Bill) entity.InvoiceDocument {
	return s.Compose(profile, bill.Customer, bill.Lines, entity.BillMeta{
		ID:       bill.ID,
		BillDate: bill.BillDate,
	})
}

// InvoiceNumber derives the display number from a bill id: the last six
// characters uppercased, left-padded with zeros for short ids.
func InvoiceNumber(billID string) string {
	n := billID
	if len(n) > 6 {
		n = n[len(n)-6:]
	}
	n = strings.ToUpper(n)
	for len(n) < 6 {
		n = "0" + n
	}
	return n
}

// NewPreviewID generates a placeholder id for a pre-save preview. The
// Invoice_ prefix keeps it visibly distinct from a persisted backend id.
func NewPreviewID() string {
	return fmt.Sprintf("Invoice_%04d", 1000+rand.Intn(9000))
}

// PreviewMeta builds the meta block for a pre-save preview dated now.
func PreviewMeta() entity.BillMeta {
	return entity.BillMeta{ID: NewPreviewID(), BillDate: time.Now()}
}
