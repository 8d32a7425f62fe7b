package ledger

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildStatementPDF renders a balance statement as a single A4 document.
func BuildStatementPDF(stmt StatementResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Balance statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Balance statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s <%s>", stmt.Employee.Name, stmt.Employee.Email))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Type: %s   Start date: %s", stmt.Employee.EmployeeType, stmt.Employee.StartDate))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", stmt.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range stmt.Entries {
		pdf.CellFormat(50, 6, e.Date.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, e.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, e.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Balance: %s", stmt.Employee.Balance.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Ledger total: %s", stmt.LedgerSum.StringFixed(2)))
	if !stmt.Consistent {
		pdf.Ln(6)
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(0, 7, "Balance does not match the ledger total")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
