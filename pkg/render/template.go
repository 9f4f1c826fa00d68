package render

import (
	"bytes"
	"html/template"
	"strings"
)

// InvoiceLine is one row of the invoice table, amounts pre-formatted.
type InvoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

// InvoiceData is the flattened view the invoice template renders.
// Callers map their domain document into it; empty branding fields are
// rendered as explicit placeholders rather than blank sections, so a
// broken asset reference never silently collapses the layout.
type InvoiceData struct {
	InvoiceNumber string
	IssueDate     string
	DueDate       string

	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	BusinessEmail   string
	LogoURL         string
	StampURL        string

	CustomerName   string
	CustomerMobile string
	CustomerEmail  string

	Lines []InvoiceLine
	Total string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceHTML))

// InvoiceHTML renders the invoice document layout. The output includes
// the #invoice-actions control strip; the exporter hides it before
// rasterization.
func InvoiceHTML(d InvoiceData) (string, error) {
	if strings.TrimSpace(d.BusinessName) == "" {
		d.BusinessName = "Business name not set"
	}
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body {
    font-family: 'Helvetica', Arial, sans-serif;
    background-color: #f8e1e1;
    margin: 0;
    padding: 0;
  }
  .invoice-container {
    max-width: 800px;
    margin: 0 auto;
    background: #fff;
    padding: 25px;
    border-radius: 10px;
  }
  .header {
    text-align: center;
    border-bottom: 2px solid #f0b8b8;
    padding-bottom: 15px;
    margin-bottom: 25px;
  }
  .header h1 {
    margin: 10px 0;
    font-size: 26px;
    color: #d32f2f;
  }
  .header p { margin: 5px 0; color: #444; }
  .header img.logo { max-width: 140px; max-height: 90px; }
  .invoice-details, .customer-details {
    display: flex;
    justify-content: space-between;
    margin-bottom: 25px;
    font-size: 14px;
  }
  .invoice-details div, .customer-details div { width: 48%; }
  table {
    width: 100%;
    border-collapse: collapse;
    margin-bottom: 25px;
  }
  th, td {
    border: 1px solid #f0b8b8;
    padding: 10px;
    text-align: left;
  }
  th { background-color: #d32f2f; color: #fff; }
  .total {
    text-align: right;
    font-weight: bold;
    font-size: 16px;
    color: #b71c1c;
    margin-top: 10px;
  }
  .footer {
    display: flex;
    justify-content: space-between;
    align-items: center;
    margin-top: 25px;
    font-size: 13px;
    color: #666;
    border-top: 1px solid #f0b8b8;
    padding-top: 15px;
  }
  .stamp img { max-width: 120px; max-height: 120px; object-fit: contain; }
  .asset-placeholder {
    display: inline-block;
    width: 110px;
    height: 80px;
    line-height: 80px;
    border: 1px dashed #bbb;
    color: #999;
    font-size: 12px;
    text-align: center;
  }
  #invoice-actions {
    display: flex;
    justify-content: flex-end;
    gap: 12px;
    max-width: 800px;
    margin: 15px auto 0;
  }
  #invoice-actions button {
    padding: 8px 16px;
    border: 0;
    border-radius: 4px;
    color: #fff;
    background: #1565c0;
  }
</style>
</head>
<body>
<div class="invoice-container">
  <div class="header">
    {{if .LogoURL}}<img class="logo" src="{{.LogoURL}}" alt="Business logo">{{else}}<span class="asset-placeholder">No logo</span>{{end}}
    <h1>{{.BusinessName}}</h1>
    <div>
      <p>{{if .BusinessAddress}}{{.BusinessAddress}}{{else}}Address not set{{end}}</p>
      <p>Phone: {{if .BusinessPhone}}{{.BusinessPhone}}{{else}}-{{end}} | Email: {{if .BusinessEmail}}{{.BusinessEmail}}{{else}}-{{end}}</p>
    </div>
  </div>

  <div class="invoice-details">
    <div>
      <p><strong>Invoice Number:</strong> INV-{{.InvoiceNumber}}</p>
      <p><strong>Date:</strong> {{.IssueDate}}</p>
    </div>
    <div>
      <p><strong>Due Date:</strong> {{.DueDate}}</p>
      <p><strong>Payment Terms:</strong> Payment Receipt</p>
    </div>
  </div>

  <div class="customer-details">
    <div>
      <p><strong>Customer Details:</strong></p>
      <p>{{.CustomerName}}</p>
      <p>Email: {{.CustomerEmail}}</p>
      <p>Mobile: {{.CustomerMobile}}</p>
    </div>
  </div>

  <table>
    <thead>
      <tr>
        <th>Item</th>
        <th>Quantity</th>
        <th>Unit Price</th>
        <th>Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Quantity}}</td>
        <td>&#8377;{{.UnitPrice}}</td>
        <td>&#8377;{{.Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="total">
    <p>Total: &#8377;{{.Total}}</p>
  </div>

  <div class="footer">
    <div>
      <p>Thank you for shopping at {{.BusinessName}}!</p>
      <p>Terms: All sales are final. Contact us for warranty details.</p>
    </div>
    <div class="stamp">
      {{if .StampURL}}<img src="{{.StampURL}}" alt="Business stamp">{{else}}<span class="asset-placeholder">No stamp</span>{{end}}
    </div>
  </div>
</div>

<div id="invoice-actions">
  <button type="button">Download PDF</button>
  <button type="button">Share via WhatsApp</button>
</div>
</body>
</html>
`
