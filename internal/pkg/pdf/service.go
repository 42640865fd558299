// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Company       CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name  string
	Email string
}

func (s *Service) invoiceData(o *order.Order) InvoiceData {
	return InvoiceData{
		InvoiceNumber: "INV-" + o.Reference(),
		InvoiceDate:   o.CreatedAt.Format("January 2, 2006"),
		Order:         o,
		Company: CompanyInfo{
			Name:  s.config.App.CompanyName,
			Email: s.config.App.CompanyEmail,
		},
	}
}

// GenerateInvoice renders the order invoice as a PDF
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(s.invoiceData(o))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; width: 90px; }
        .total-row td { font-size: 18px; font-weight: bold; border-top: 2px solid #333; }
        .footer { margin-top: 50px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Company.Name}}</h1>
        <div class="invoice-title">INVOICE</div>
        <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
        <p><strong>Date:</strong> {{.InvoiceDate}}</p>
        <p><strong>Order ID:</strong> {{.Order.ID}}</p>
        <p><strong>Status:</strong> {{.Order.Status}}</p>
    </div>

    <div class="section-title">Ship To:</div>
    {{with .Order.ShippingAddress}}
    <p><strong>{{.FullName}}</strong></p>
    <p>{{.Address}}</p>
    <p>{{.City}}, {{.State}} {{.ZipCode}}</p>
    <p>Phone: {{.Phone}}</p>
    {{end}}

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.Price.StringFixed 2}}</td>
                <td class="num">${{.Subtotal.StringFixed 2}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3" class="num">Total:</td>
                <td class="num">${{.Order.Total.StringFixed 2}}</td>
            </tr>
        </tbody>
    </table>

    <div class="footer">
        <p>Thank you for your order!</p>
        <p>Questions about this invoice? Contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
