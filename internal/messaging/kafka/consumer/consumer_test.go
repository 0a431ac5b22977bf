package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka/consumer"
	"go-hrm/internal/payslip"
	"go-hrm/internal/shared/contextutil"
	paysliperrors "go-hrm/internal/payslip/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeLeaveService struct {
	calls []string
	err   error
}

func (f *fakeLeaveService) InitializeBalances(ctx context.Context, companyID, employeeID string) error {
	f.calls = append(f.calls, companyID+"/"+employeeID)
	return f.err
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestRun_EmployeeCreated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 1, Value: mustJSON(t, events.EmployeeCreatedEvent{EventType: events.EmployeeCreatedType, CompanyID: "c-1", EmployeeID: "e-1"})},
			{Offset: 2, Value: []byte("not-json")},
		},
	}
	svc := &fakeLeaveService{}

	err := consumer.Run(ctx, reader, "test", consumer.EmployeeCreatedHandler(svc), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"c-1/e-1"}, svc.calls)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestRun_FailedMessageNotCommitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 7, Value: mustJSON(t, events.EmployeeCreatedEvent{EventType: events.EmployeeCreatedType, CompanyID: "c-1", EmployeeID: "e-1"})},
		},
	}
	svc := &fakeLeaveService{err: errors.New("db down")}

	require.NoError(t, consumer.Run(ctx, reader, "test", consumer.EmployeeCreatedHandler(svc), zap.NewNop()))
	assert.Empty(t, reader.committed)
}

type fakePayslipService struct {
	err     error
	entryID string
}

func (f *fakePayslipService) GenerateForEntry(ctx context.Context, companyID, actorID, entryID string) (payslip.PayslipResponse, error) {
	f.entryID = entryID
	return payslip.PayslipResponse{}, f.err
}

func TestRun_PropagatesRequestID(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 3, Value: []byte(`{}`), Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-42")}}},
		},
	}

	var got string
	handle := func(ctx context.Context, msg kafkago.Message) error {
		got = contextutil.GetRequestID(ctx)
		return nil
	}

	require.NoError(t, consumer.Run(ctx, reader, "test", handle, zap.NewNop()))
	assert.Equal(t, "req-42", got)
	assert.Equal(t, []int64{3}, reader.committed)
}

func TestPayslipRequestedHandler(t *testing.T) {
	msg := kafkago.Message{Value: mustJSON(t, events.PayslipRequestedEvent{
		EventType:      events.PayslipRequestedType,
		CompanyID:      "c-1",
		PayrollRunID:   "run-1",
		PayrollEntryID: "entry-1",
	})}

	svc := &fakePayslipService{}
	require.NoError(t, consumer.PayslipRequestedHandler(svc)(context.Background(), msg))
	assert.Equal(t, "entry-1", svc.entryID)

	svc.err = paysliperrors.ErrPayrollEntryNotFound
	err := consumer.PayslipRequestedHandler(svc)(context.Background(), msg)
	assert.ErrorIs(t, err, consumer.ErrSkipMessage)

	svc.err = errors.New("disk full")
	err = consumer.PayslipRequestedHandler(svc)(context.Background(), msg)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, consumer.ErrSkipMessage)
}
