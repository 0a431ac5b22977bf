package payslip

import (
	"fmt"
	"io"
	"time"

	"go-hrm/internal/payroll"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

func formatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Document is everything printed on a payslip. All figures come from the
// payroll entry snapshot.
type Document struct {
	PayslipNumber string
	Run           payroll.PayrollRun
	Entry         payroll.PayrollEntry
	GeneratedAt   time.Time
}

type pdfRow struct {
	label string
	value string
}

// Render writes doc as a single A4 page.
func Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Payslip "+doc.PayslipNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	e := doc.Entry
	pdf.SetFont("Arial", "", 11)
	writeRows(pdf, tr, []pdfRow{
		{"Payslip No", doc.PayslipNumber},
		{"Payroll", doc.Run.Reference},
		{"Period", fmt.Sprintf("%s - %s", doc.Run.PayPeriodStart.Format("02 Jan 2006"), doc.Run.PayPeriodEnd.Format("02 Jan 2006"))},
		{"Employee", e.EmployeeName},
		{"Employee No", e.EmployeeNumber},
	})

	section(pdf, "Attendance")
	writeRows(pdf, tr, []pdfRow{
		{"Working days", fmt.Sprintf("%d", e.WorkingDays)},
		{"Present days", fmt.Sprintf("%d", e.PresentDays)},
		{"Half days", fmt.Sprintf("%d", e.HalfDays)},
		{"Absent days", fmt.Sprintf("%d", e.AbsentDays)},
		{"Paid leave days", fmt.Sprintf("%d", e.PaidLeaveDays)},
		{"Unpaid leave days", fmt.Sprintf("%d", e.UnpaidLeaveDays)},
		{"Overtime hours", e.OvertimeHours.StringFixed(2)},
	})

	section(pdf, "Earnings")
	earnings := []pdfRow{{"Basic salary", formatMoney(e.BasicSalary)}}
	for _, line := range e.EarningsBreakdown {
		earnings = append(earnings, pdfRow{line.Name, formatMoney(line.Amount)})
	}
	if !e.OvertimeAmount.IsZero() {
		earnings = append(earnings, pdfRow{"Overtime", formatMoney(e.OvertimeAmount)})
	}
	writeRows(pdf, tr, earnings)

	section(pdf, "Deductions")
	var deductions []pdfRow
	for _, line := range e.DeductionsBreakdown {
		deductions = append(deductions, pdfRow{line.Name, formatMoney(line.Amount)})
	}
	if !e.UnpaidLeaveDeduction.IsZero() {
		deductions = append(deductions, pdfRow{
			fmt.Sprintf("Unpaid days (%s)", e.UnpaidLeaveDaysTotal.StringFixed(1)),
			formatMoney(e.UnpaidLeaveDeduction),
		})
	}
	if len(deductions) == 0 {
		deductions = append(deductions, pdfRow{"-", formatMoney(decimal.Zero)})
	}
	writeRows(pdf, tr, deductions)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	writeRows(pdf, tr, []pdfRow{
		{"Gross pay", formatMoney(e.GrossPay)},
		{"Net pay", formatMoney(e.NetPay)},
	})

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 10, fmt.Sprintf("Generated on %s", doc.GeneratedAt.Format("02 January 2006 15:04:05")))

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
}

func writeRows(pdf *gofpdf.Fpdf, tr func(string) string, rows []pdfRow) {
	for _, r := range rows {
		pdf.CellFormat(90, 7, tr(r.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 7, tr(r.value), "", 1, "R", false, 0, "")
	}
}
