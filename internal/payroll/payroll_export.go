package payroll

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportHeaders = []string{
	"Employee Number", "Employee Name", "Working Days", "Present", "Half Days",
	"Absent", "Paid Leave", "Unpaid Leave", "Basic Salary", "Component Earnings",
	"Overtime", "Unpaid Deduction", "Gross Pay", "Deductions", "Net Pay",
}

// BuildRunWorkbook lays out a run's entries as one sheet: a title block,
// a header row, one row per entry and a totals row. The caller closes
// the returned file.
func BuildRunWorkbook(run PayrollRun, entries []PayrollEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	f.SetCellValue(exportSheet, "A1", "PAYROLL "+run.Reference)
	f.SetCellStyle(exportSheet, "A1", "A1", titleStyle)
	f.SetCellValue(exportSheet, "A2", "Period")
	f.SetCellValue(exportSheet, "B2", fmt.Sprintf("%s - %s", run.PayPeriodStart.Format(dateLayout), run.PayPeriodEnd.Format(dateLayout)))
	f.SetCellValue(exportSheet, "A3", "Status")
	f.SetCellValue(exportSheet, "B3", run.Status)

	const headerRow = 5
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(exportSheet, cell, h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	f.SetCellStyle(exportSheet, "A5", fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := headerRow + 1
	for _, e := range entries {
		values := []any{
			e.EmployeeNumber,
			e.EmployeeName,
			e.WorkingDays,
			e.PresentDays,
			e.HalfDays,
			e.AbsentDays,
			e.PaidLeaveDays,
			e.UnpaidLeaveDays,
			e.BasicSalary.InexactFloat64(),
			e.ComponentEarnings.InexactFloat64(),
			e.OvertimeAmount.InexactFloat64(),
			e.UnpaidLeaveDeduction.InexactFloat64(),
			e.GrossPay.InexactFloat64(),
			e.TotalDeductions.InexactFloat64(),
			e.NetPay.InexactFloat64(),
		}
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	totals := CalculateTotals(entries)
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), "TOTAL")
	f.SetCellValue(exportSheet, fmt.Sprintf("M%d", row), totals.TotalGross.InexactFloat64())
	f.SetCellValue(exportSheet, fmt.Sprintf("N%d", row), totals.TotalDeductions.InexactFloat64())
	f.SetCellValue(exportSheet, fmt.Sprintf("O%d", row), totals.TotalNet.InexactFloat64())
	f.SetCellStyle(exportSheet, fmt.Sprintf("I%d", headerRow+1), fmt.Sprintf("O%d", row), moneyStyle)

	f.SetColWidth(exportSheet, "A", "A", 18)
	f.SetColWidth(exportSheet, "B", "B", 28)
	f.SetColWidth(exportSheet, "C", "H", 12)
	f.SetColWidth(exportSheet, "I", "O", 18)

	return f, nil
}
