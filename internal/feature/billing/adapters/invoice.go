package adapters

import (
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/feature/billing/domain"
)

const invoiceHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.Bill.No}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: .5rem; border-bottom: 1px solid #ddd; }
.num { text-align: right; }
@media print { .no-print { display: none; } }
</style>
</head>
<body onload="window.print()">
<h1>Invoice</h1>
<p>#{{.Bill.No}}</p>
<section>
<h2>Bill To:</h2>
<p><strong>{{.Bill.Customer.Name}}</strong></p>
<p>{{.Bill.Customer.Address}}</p>
<p>Phone: {{.Bill.Customer.Mobile}}</p>
<p>Email: {{.Bill.Customer.Email}}</p>
{{- if .Bill.Customer.GST}}
<p>GST: {{.Bill.Customer.GST}}</p>
{{- end}}
</section>
<section>
<h2>Bill Details:</h2>
<p>Date: {{.PrintedAt.Format "02 Jan 2006"}}</p>
<p>Time: {{.PrintedAt.Format "15:04:05"}}</p>
</section>
<table>
<thead><tr><th>Item</th><th class="num">Price</th><th class="num">Quantity</th><th class="num">Total</th></tr></thead>
<tbody>
{{- range .Bill.Lines}}
<tr><td>{{.Name}}</td><td class="num">{{money .Price}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .Amount}}</td></tr>
{{- end}}
</tbody>
<tfoot><tr><td colspan="3" class="num"><strong>Total Amount:</strong></td><td class="num"><strong>{{money .Bill.Total}}</strong></td></tr></tfoot>
</table>
<p>Thank you for your business!</p>
</body>
</html>
`

const invoiceText = `INVOICE #{{.Bill.No}}
Date: {{.PrintedAt.Format "02 Jan 2006 15:04:05"}}

Bill To: {{.Bill.Customer.Name}}
{{- if .Bill.Customer.Address}}
         {{.Bill.Customer.Address}}{{end}}
Phone:   {{.Bill.Customer.Mobile}}
Email:   {{.Bill.Customer.Email}}
{{- if .Bill.Customer.GST}}
GST:     {{.Bill.Customer.GST}}{{end}}

{{pad "Item" 24}} {{lpad "Price" 10}} {{lpad "Qty" 5}} {{lpad "Total" 12}}
{{rule 54}}
{{- range .Bill.Lines}}
{{pad .Name 24}} {{lpad (money .Price) 10}} {{lpad (itoa .Quantity) 5}} {{lpad (money .Amount) 12}}
{{- end}}
{{rule 54}}
{{lpad "Total Amount:" 41}} {{lpad (money .Bill.Total) 12}}

Thank you for your business!
`

// InvoiceRenderer renders a final bill as a printable page or plain text.
type InvoiceRenderer struct {
	html *template.Template
	text *texttemplate.Template
	now  func() time.Time
}

type invoiceView struct {
	Bill      *domain.Bill
	PrintedAt time.Time
}

// NewInvoiceRenderer parses the templates. loc sets the printed time zone and
// currency prefixes every amount.
func NewInvoiceRenderer(loc *time.Location, currency string) *InvoiceRenderer {
	if loc == nil {
		loc = time.Local
	}
	money := func(d decimal.Decimal) string { return currency + d.StringFixed(2) }
	textFuncs := texttemplate.FuncMap{
		"money": money,
		"itoa":  func(n int) string { return decimal.NewFromInt(int64(n)).String() },
		"rule":  func(n int) string { return strings.Repeat("-", n) },
		"pad":   func(s string, n int) string { return pad(s, n, false) },
		"lpad":  func(s string, n int) string { return pad(s, n, true) },
	}
	return &InvoiceRenderer{
		html: template.Must(template.New("invoice.html").Funcs(template.FuncMap{"money": money}).Parse(invoiceHTML)),
		text: texttemplate.Must(texttemplate.New("invoice.txt").Funcs(textFuncs).Parse(invoiceText)),
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

// pad fits s into n runes, truncating or padding with spaces.
func pad(s string, n int, left bool) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	fill := strings.Repeat(" ", n-len(r))
	if left {
		return fill + s
	}
	return s + fill
}

// HTML writes the print view, which opens the print dialog on load.
func (r *InvoiceRenderer) HTML(w io.Writer, b *domain.Bill) error {
	return r.html.Execute(w, invoiceView{Bill: b, PrintedAt: r.now()})
}

func (r *InvoiceRenderer) Text(w io.Writer, b *domain.Bill) error {
	return r.text.Execute(w, invoiceView{Bill: b, PrintedAt: r.now()})
}
