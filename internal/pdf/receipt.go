package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func FileName(receipt model.PaymentReceipt) string {
	return fmt.Sprintf("receipt-%d.pdf", receipt.Number)
}

// Generate renders a payment receipt voucher: header, payer block,
// one table row per allocated obligation and the distributed total.
func (g *Generator) Generate(receipt model.PaymentReceipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Payment Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Receipt No. %d, %s", receipt.Number, formatDate(receipt.CreatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Payer", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	payer := receipt.PayerName
	if payer == "" {
		payer = receipt.CustomerID.String()
	}
	pdf.CellFormat(0, 5, payer, "", 1, "L", false, 0, "")
	if receipt.Method != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Method: %s", receipt.Method), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	headers := []string{"Obligation", "Type", "Amount"}
	colWidths := []float64{90, 50, 40}
	drawTableRow(pdf, headers, colWidths, true)

	allocated := 0.0
	for _, line := range receipt.Lines {
		row := []string{
			line.ObligationID.String(),
			string(line.Type),
			fmt.Sprintf("%.2f", line.Amount),
		}
		drawTableRow(pdf, row, colWidths, false)
		allocated += line.Amount
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Amount received: %.2f", receipt.Amount), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Amount allocated: %.2f", allocated), "", 1, "R", false, 0, "")

	if receipt.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, receipt.Notes, "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 6, "Received by: ____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Payer: ____________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
