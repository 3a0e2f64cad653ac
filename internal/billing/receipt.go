// Package billing renders guest bills for an order, as plain text for
// thermal printers and as a PDF for email or archive. Both layouts show the
// same facts: the table, each line with quantity and snapshot price, and the
// running total. Rendering never mutates the order.
package billing

import (
	"bytes"
	"fmt"
	"strings"

	"dinepos/internal/dto"

	"github.com/go-pdf/fpdf"
)

const textWidth = 40

// Renderer carries the restaurant identity printed on every bill.
type Renderer struct {
	Restaurant string
	Currency   string
}

func NewRenderer(restaurant, currency string) *Renderer {
	return &Renderer{Restaurant: restaurant, Currency: currency}
}

func center(s string) string {
	if len(s) >= textWidth {
		return s
	}
	pad := (textWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// RenderText produces the 40-column monospace bill.
func (r *Renderer) RenderText(order *dto.OrderResponse) string {
	var b strings.Builder
	rule := strings.Repeat("=", textWidth)
	thin := strings.Repeat("-", textWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center(r.Restaurant) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Table: %d\n", order.TableNumber))
	b.WriteString(fmt.Sprintf("Order: %s\n", order.ID))
	b.WriteString(fmt.Sprintf("Date:  %s\n", order.CreatedAt))
	b.WriteString(thin + "\n")

	for _, line := range order.Lines {
		name := truncate(line.Product, 22)
		qty := fmt.Sprintf("x%d", line.Quantity)
		amount := line.LineTotal.StringFixed(2)
		gap := textWidth - len(name) - len(qty) - len(amount) - 2
		if gap < 1 {
			gap = 1
		}
		b.WriteString(fmt.Sprintf("%s %s%s%s\n", name, qty, strings.Repeat(" ", gap), amount))
	}

	b.WriteString(thin + "\n")
	total := "TOTAL: " + r.Currency + order.Total.StringFixed(2)
	b.WriteString(fmt.Sprintf("%*s\n", textWidth, total))
	b.WriteString(rule + "\n")
	b.WriteString(center("Thank you for dining with us!") + "\n")
	return b.String()
}

// RenderPDF produces a receipt-sized PDF of the bill.
func (r *Renderer) RenderPDF(order *dto.OrderResponse) ([]byte, error) {
	// 74x105mm (A7), close to thermal receipt paper. Not in fpdf's named sizes.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, r.Restaurant, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Guest Bill", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Table %d", order.TableNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, order.CreatedAt, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range order.Lines {
		pdf.CellFormat(col1, 5, truncate(line.Product, 22), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, r.Currency+line.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, r.Currency+order.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for dining with us!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("billing: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
