package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-hrm/internal/events"
	leaveerrors "go-hrm/internal/leave/errors"

	kafkago "github.com/segmentio/kafka-go"
)

type LeaveBalanceInitializer interface {
	InitializeBalances(ctx context.Context, companyID, employeeID string) error
}

// EmployeeCreatedHandler opens the current year's leave balances for a new hire.
func EmployeeCreatedHandler(leaveService LeaveBalanceInitializer) Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode employee_created: %v", ErrSkipMessage, err)
		}
		if event.EventType != "" && event.EventType != events.EmployeeCreatedType {
			return nil
		}
		if event.CompanyID == "" || event.EmployeeID == "" {
			return fmt.Errorf("%w: employee_created without ids", ErrSkipMessage)
		}
		err := leaveService.InitializeBalances(ctx, event.CompanyID, event.EmployeeID)
		if errors.Is(err, leaveerrors.ErrEmployeeNotInCompany) {
			return fmt.Errorf("%w: %v", ErrSkipMessage, err)
		}
		return err
	}
}
