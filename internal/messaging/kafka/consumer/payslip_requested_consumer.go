package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-hrm/internal/events"
	"go-hrm/internal/payslip"
	paysliperrors "go-hrm/internal/payslip/errors"

	kafkago "github.com/segmentio/kafka-go"
)

type PayslipGenerator interface {
	GenerateForEntry(ctx context.Context, companyID, actorID, entryID string) (payslip.PayslipResponse, error)
}

// PayslipRequestedHandler renders the payslip of one completed payroll entry.
func PayslipRequestedHandler(payslipService PayslipGenerator) Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode payslip_requested: %v", ErrSkipMessage, err)
		}

		_, err := payslipService.GenerateForEntry(ctx, event.CompanyID, event.RequestedBy, event.PayrollEntryID)
		if errors.Is(err, paysliperrors.ErrPayrollEntryNotFound) || errors.Is(err, paysliperrors.ErrRunNotCompleted) {
			return fmt.Errorf("%w: %v", ErrSkipMessage, err)
		}
		return err
	}
}
