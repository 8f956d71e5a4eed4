// Package render produces printable HTML representations of pipeline
// documents. Rendering is a pure function of the entity and mutates no
// state.
package render

import (
	"bytes"
	"html/template"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
)

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head><title>Proforma Invoice {{.Invoice.Reference}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 720px; margin: auto;">
	<h1>Proforma Invoice</h1>
	<p><strong>{{.Invoice.Reference}}</strong></p>
	<p>Billed to: {{.Lead.Name}}{{if .Lead.CompanyName}}, {{.Lead.CompanyName}}{{end}}</p>
	<table width="100%" cellpadding="6" style="border-collapse: collapse;">
		<tr><td>Subtotal</td><td align="right">{{printf "%.2f" .Invoice.Subtotal}}</td></tr>
		<tr><td>Discount</td><td align="right">{{printf "%.2f" .Invoice.DiscountAmount}}</td></tr>
		<tr><td>GST (18%)</td><td align="right">{{printf "%.2f" .Invoice.GSTAmount}}</td></tr>
		<tr><td><strong>Grand Total</strong></td><td align="right"><strong>{{printf "%.2f" .Invoice.GrandTotal}}</strong></td></tr>
	</table>
	<p>Date: {{.Invoice.CreatedAt.Format "2006-01-02"}}</p>
</body>
</html>`

const agreementTemplate = `<!DOCTYPE html>
<html>
<head><title>Agreement {{.Agreement.Reference}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 720px; margin: auto;">
	<h1>Service Agreement</h1>
	<p><strong>{{.Agreement.Reference}}</strong></p>
	<p>Client: {{.Lead.Name}}{{if .Lead.CompanyName}}, {{.Lead.CompanyName}}{{end}}</p>
	<p>Contract value: {{printf "%.2f" .Agreement.Value}}</p>
	{{if .Agreement.Milestones}}
	<h2>Milestones</h2>
	<table width="100%" cellpadding="6" style="border-collapse: collapse;">
		{{range .Agreement.Milestones}}
		<tr><td>{{.Description}}</td><td align="right">{{printf "%.2f" .Amount}}</td><td>{{.DueDate.Format "2006-01-02"}}</td></tr>
		{{end}}
	</table>
	{{end}}
	{{if .Agreement.SignedAt}}
	<p>Signed by {{.Agreement.SignerName}} ({{.Agreement.SignerEmail}}) on {{.Agreement.SignedAt.Format "2006-01-02"}}</p>
	{{end}}
</body>
</html>`

var (
	invoiceTmpl   = template.Must(template.New("invoice").Parse(invoiceTemplate))
	agreementTmpl = template.Must(template.New("agreement").Parse(agreementTemplate))
)

// ProformaInvoice renders the printable view of an invoice.
func ProformaInvoice(invoice *entity.ProformaInvoice, lead *entity.Lead) ([]byte, error) {
	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, map[string]interface{}{
		"Invoice": invoice,
		"Lead":    lead,
	})
	return buf.Bytes(), err
}

// Agreement renders the printable view of an agreement.
func Agreement(agreement *entity.Agreement, lead *entity.Lead) ([]byte, error) {
	var buf bytes.Buffer
	err := agreementTmpl.Execute(&buf, map[string]interface{}{
		"Agreement": agreement,
		"Lead":      lead,
	})
	return buf.Bytes(), err
}
