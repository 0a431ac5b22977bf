package payslip

type GetPayslipsFilterRequest struct {
	PayrollRunID string `form:"payroll_run_id" binding:"omitempty,uuid"`
	EmployeeID   string `form:"employee_id" binding:"omitempty,uuid"`
	Status       string `form:"status"`
}

type GenerateRunPayslipsResponse struct {
	PayrollRunID string            `json:"payroll_run_id"`
	Generated    int               `json:"generated"`
	Payslips     []PayslipResponse `json:"payslips"`
}

type PayslipResponse struct {
	ID             string  `json:"id"`
	PayrollEntryID string  `json:"payroll_entry_id"`
	PayrollRunID   string  `json:"payroll_run_id"`
	EmployeeID     string  `json:"employee_id"`
	PayslipNumber  string  `json:"payslip_number"`
	Status         string  `json:"status"`
	GeneratedAt    string  `json:"generated_at"`
	SentAt         *string `json:"sent_at,omitempty"`
	DownloadedAt   *string `json:"downloaded_at,omitempty"`
}
