package infra

// pdf.go — party statement generation using go-pdf/fpdf.
// Produces an A4 statement with the business header, party details, a dated
// credit/debit table and the closing balance. The output file is saved to
// storagePath/statement_{partyID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

// StatementLine is one printed row of a party statement.
type StatementLine struct {
	When   time.Time
	Kind   string
	Amount decimal.Decimal
	Note   string
}

// GenerateStatementPDF writes a statement for one party and returns the
// absolute path of the generated file.
func GenerateStatementPDF(business string, party *model.Party, lines []StatementLine, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("statement_%s.pdf", party.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, business, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Account Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Party info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, party.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if party.Phone != nil {
		pdf.CellFormat(contentW, 5, *party.Phone, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Generated %s", time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Transaction table ────────────────────────────────────────────────────
	colDate, colKind, colAmount := 32.0, 22.0, 32.0
	colNote := contentW - colDate - colKind - colAmount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colDate, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colKind, 6, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Amount", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colNote, 6, "Note", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range lines {
		pdf.CellFormat(colDate, 5.5, l.When.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colKind, 5.5, l.Kind, "", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, 5.5, l.Amount.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colNote, 5.5, l.Note, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Closing balance ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	label := "Receivable"
	if party.TotalBalance.IsNegative() {
		label = "Payable"
	}
	pdf.CellFormat(contentW, 7,
		fmt.Sprintf("Balance (%s): %s", label, party.TotalBalance.Abs().StringFixed(2)),
		"T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
