package events

import "time"

const (
	PayslipRequestedTopic = "hr.payroll.payslip.requested.v1"
	PayslipRequestedType  = "payslip_requested"
)

// PayslipRequestedEvent is queued once per payroll entry when a run completes.
type PayslipRequestedEvent struct {
	EventType      string    `json:"event_type"`
	PayrollRunID   string    `json:"payroll_run_id"`
	PayrollEntryID string    `json:"payroll_entry_id"`
	CompanyID      string    `json:"company_id"`
	RequestedBy    string    `json:"requested_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
