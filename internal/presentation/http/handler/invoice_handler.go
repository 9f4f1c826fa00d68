package handler

import (
	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/domain/entity"
	"mims-console/internal/presentation/http/dto/response"
	"mims-console/pkg/apperror"
	"mims-console/pkg/money"
	"mims-console/pkg/render"
)

// InvoiceHandler handles invoice composition, export and sharing
type InvoiceHandler struct {
	orderService   *service.OrderService
	billService    *service.BillService
	profileService *service.ProfileService
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
	shareService   *service.ShareService
	defaultFormat  render.PageFormat
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	orderService *service.OrderService,
	billService *service.BillService,
	profileService *service.ProfileService,
	invoiceService *service.InvoiceService,
	exportService *service.ExportService,
	shareService *service.ShareService,
	defaultFormat render.PageFormat,
) *InvoiceHandler {
	return &InvoiceHandler{
		orderService:   orderService,
		billService:    billService,
		profileService: profileService,
		invoiceService: invoiceService,
		exportService:  exportService,
		shareService:   shareService,
		defaultFormat:  defaultFormat,
	}
}

// Preview composes the invoice for the current draft without saving it.
// The placeholder invoice id makes clear no bill exists yet.
func (h *InvoiceHandler) Preview(c *gin.Context) {
	doc, err := h.composeDraft(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice preview", documentPayload(doc))
}

// PreviewPDF renders the draft invoice preview as a PDF
func (h *InvoiceHandler) PreviewPDF(c *gin.Context) {
	format, err := h.pageFormat(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.composeDraft(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pdf, err := h.exportService.Export(c.Request.Context(), doc, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	servePDF(c, doc.InvoiceNumber, pdf)
}

// BillPDF renders a saved bill's invoice as a PDF
func (h *InvoiceHandler) BillPDF(c *gin.Context) {
	format, err := h.pageFormat(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.composeBill(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pdf, err := h.exportService.Export(c.Request.Context(), doc, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	servePDF(c, doc.InvoiceNumber, pdf)
}

// Share runs the upload-and-deep-link pipeline for a saved bill
func (h *InvoiceHandler) Share(c *gin.Context) {
	format, err := h.pageFormat(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.composeBill(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.shareService.Share(c.Request.Context(), doc, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Share link ready", output)
}

func (h *InvoiceHandler) composeDraft(c *gin.Context) (entity.InvoiceDocument, error) {
	email := SessionEmail(c)

	draft := h.orderService.Draft(email)
	if len(draft.Lines) == 0 {
		return entity.InvoiceDocument{}, apperror.NewValidationError("lines", "Add at least one item to preview the invoice")
	}

	profile, err := h.profileService.Get(c.Request.Context(), email)
	if err != nil {
		return entity.InvoiceDocument{}, err
	}

	return h.invoiceService.Compose(*profile, draft.Customer, draft.BillLines(), service.PreviewMeta()), nil
}

func (h *InvoiceHandler) composeBill(c *gin.Context) (entity.InvoiceDocument, error) {
	email := SessionEmail(c)

	bill, err := h.billService.GetBill(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		return entity.InvoiceDocument{}, err
	}

	profile, err := h.profileService.Get(c.Request.Context(), email)
	if err != nil {
		return entity.InvoiceDocument{}, err
	}

	return h.invoiceService.ComposeFromBill(*profile, *bill), nil
}

func (h *InvoiceHandler) pageFormat(c *gin.Context) (render.PageFormat, error) {
	raw := c.Query("format")
	if raw == "" {
		return h.defaultFormat, nil
	}
	return render.ParsePageFormat(raw)
}

func documentPayload(doc entity.InvoiceDocument) gin.H {
	return gin.H{
		"invoice_number": doc.InvoiceNumber,
		"issue_date":     doc.IssueDate,
		"due_date":       doc.DueDate,
		"business":       doc.Business,
		"customer":       doc.Customer,
		"lines":          doc.Lines,
		"total":          money.ToFloat(doc.Total),
	}
}

func servePDF(c *gin.Context, invoiceNumber string, pdf []byte) {
	c.Header("Content-Disposition", `attachment; filename="invoice-INV-`+invoiceNumber+`.pdf"`)
	c.Data(200, "application/pdf", pdf)
}
