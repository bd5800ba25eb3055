package infra

// pdf.go: printable documents using go-pdf/fpdf.
//   - Invoice: A6 receipt for one SALE or RETURN record
//   - Salary slip: A5 payroll statement for one salary payment
//
// Renderers write to an io.Writer; SavePDF archives a copy under
// PDF_STORAGE_PATH.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// InvoiceLine is one printed row of an invoice.
type InvoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Invoice carries everything printed on a receipt. Amounts are the record's
// snapshot values; a RETURN prints its negative final amount as is.
type Invoice struct {
	ShopName      string
	BranchName    string
	Number        string
	Date          time.Time
	Return        bool
	OriginalSale  string
	CustomerName  string
	CustomerPhone string
	Lines         []InvoiceLine
	Subtotal      decimal.Decimal
	VAT           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
}

// SalarySlip carries a payroll statement.
type SalarySlip struct {
	ShopName     string
	PaymentID    string
	EmployeeName string
	RoleName     string
	BranchName   string
	Month        string
	DatePaid     time.Time
	BasicSalary  decimal.Decimal
	Bonus        decimal.Decimal
	Deduction    decimal.Decimal
	NetPay       decimal.Decimal
	Note         string
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// RenderInvoicePDF writes inv as a receipt-sized PDF to w.
func RenderInvoicePDF(w io.Writer, inv Invoice) error {
	// A6 = 105mm × 148mm
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 105, Ht: 148},
	})
	pdf.SetMargins(6, 6, 6)
	pdf.SetAutoPageBreak(true, 6)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 12

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 7, tr(inv.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, tr(inv.BranchName), "", 1, "C", false, 0, "")
	title := "INVOICE"
	if inv.Return {
		title = "RETURN RECEIPT"
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, title, "", 1, "C", false, 0, "")
	pdf.Ln(1)

	// ── Record info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "No. "+tr(inv.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, inv.Date.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if inv.OriginalSale != "" {
		pdf.CellFormat(contentW, 4, "Reverses "+tr(inv.OriginalSale), "", 1, "L", false, 0, "")
	}
	if inv.CustomerName != "" {
		pdf.CellFormat(contentW, 4, "Customer: "+tr(inv.CustomerName), "", 1, "L", false, 0, "")
	}
	if inv.CustomerPhone != "" {
		pdf.CellFormat(contentW, 4, "Phone: "+tr(inv.CustomerPhone), "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)
	pdf.Line(6, pdf.GetY(), pageW-6, pdf.GetY())
	pdf.Ln(1)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.46
	col2 := contentW * 0.12
	col3 := contentW * 0.20
	col4 := contentW * 0.22

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range inv.Lines {
		name := l.Name
		if r := []rune(name); len(r) > 28 {
			name = string(r[:27]) + "."
		}
		pdf.CellFormat(col1, 5, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d", l.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, money(l.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, money(l.LineTotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(6, pdf.GetY(), pageW-6, pdf.GetY())
	pdf.Ln(1)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3
	pdf.CellFormat(labelW, 4, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 4, money(inv.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 4, "VAT:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 4, money(inv.VAT), "", 1, "R", false, 0, "")
	if !inv.Discount.IsZero() {
		pdf.CellFormat(labelW, 4, "Discount:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 4, "-"+money(inv.Discount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, money(inv.Total), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for shopping with us!", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render invoice: %w", err)
	}
	return nil
}

// RenderSalarySlipPDF writes slip as an A5 payroll statement to w.
func RenderSalarySlipPDF(w io.Writer, slip SalarySlip) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr(slip.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Salary Slip - "+tr(slip.Month), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	info := [][2]string{
		{"Payment", slip.PaymentID},
		{"Employee", slip.EmployeeName},
		{"Designation", slip.RoleName},
		{"Branch", slip.BranchName},
		{"Date paid", slip.DatePaid.Format("02 Jan 2006")},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range info {
		pdf.CellFormat(contentW*0.35, 6, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.65, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(contentW*0.65, 7, "Component", "1", 0, "L", true, 0, "")
	pdf.CellFormat(contentW*0.35, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range []struct {
		label string
		value string
	}{
		{"Basic salary", money(slip.BasicSalary)},
		{"Bonus", money(slip.Bonus)},
		{"Deduction", "-" + money(slip.Deduction)},
	} {
		pdf.CellFormat(contentW*0.65, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.35, 7, row.value, "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.65, 8, "Net pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.35, 8, money(slip.NetPay), "1", 1, "R", false, 0, "")

	if slip.Note != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 5, "Note: "+tr(slip.Note), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render salary slip: %w", err)
	}
	return nil
}

// SavePDF writes data to storagePath/fileName, creating the directory if
// needed, and returns the file path.
func SavePDF(storagePath, fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, filepath.Base(fileName))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
