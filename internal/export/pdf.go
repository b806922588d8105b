package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/woodshop-tools/framecad/internal/stock"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
	headerHeight = 10.0
)

// column widths for the cut-list table, in mm.
var cutListCols = []struct {
	title string
	width float64
}{
	{"Part", 52},
	{"Qty", 12},
	{"Dim", 16},
	{"Len (in)", 20},
	{"Angle", 16},
	{"Notes", 64},
}

// ExportCutReport writes a PDF report of the imported cut-list: one table
// per section, followed by a purchase summary when a cutting-stock
// solution is supplied (pass nil to skip it).
func ExportCutReport(path string, set *model.SectionSet, policy model.DimensionPolicy, sol *stock.Solution) error {
	if set == nil || set.Len() == 0 {
		return fmt.Errorf("no records to report")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight,
		"Lumber Cut List", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	summary := fmt.Sprintf("%d sections | %d line items | %d boards | %s dimensions",
		len(set.Sections), set.Len(), set.TotalPieces(), policy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, summary, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, section := range set.Sections {
		renderSectionTable(pdf, section)
	}

	if sol != nil {
		pdf.AddPage()
		renderPurchasePage(pdf, sol)
	}

	return pdf.OutputFileAndClose(path)
}

// renderSectionTable draws one section's records as a table.
func renderSectionTable(pdf *fpdf.Fpdf, section model.Section) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, section.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(marginLeft)
	for _, col := range cutListCols {
		pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range section.Records {
		cells := []string{
			truncate(pdf, rec.Name, cutListCols[0].width-2),
			fmt.Sprintf("%d", rec.Quantity),
			rec.NominalDim,
			fmt.Sprintf("%.2f", rec.Length),
			fmt.Sprintf("%.1f", rec.Angle),
			truncate(pdf, rec.Notes, cutListCols[5].width-2),
		}
		pdf.SetX(marginLeft)
		for i, cell := range cells {
			pdf.CellFormat(cutListCols[i].width, rowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}
	pdf.Ln(4)
}

// renderPurchasePage draws the cutting-stock solution summary.
func renderPurchasePage(pdf *fpdf.Fpdf, sol *stock.Solution) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight,
		"Purchase Plan", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(0, 6, fmt.Sprintf("Boards to buy: %d", len(sol.Boards)), "", 1, "L", false, 0, "")
	pdf.SetX(marginLeft)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total cost: $%.2f (theoretical minimum $%.2f)",
		sol.TotalCost, sol.Theoretical.MinCost), "", 1, "L", false, 0, "")
	pdf.SetX(marginLeft)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total waste: %.1f in", sol.TotalWaste), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(0, 6, "Cutting patterns", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	for _, p := range sol.Patterns() {
		cuts := ""
		for i, c := range p.Cuts {
			if i > 0 {
				cuts += ", "
			}
			cuts += fmt.Sprintf("%.2f", c)
		}
		pdf.SetX(marginLeft)
		line := fmt.Sprintf("%dx %.0f in board: [%s]", p.TimesUsed, p.StockLengthIn, cuts)
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
}

// truncate shortens a string with an ellipsis to fit the given cell width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
