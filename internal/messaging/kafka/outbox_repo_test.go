package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-hrm/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("req", "employee", "emp-1", "employee_created", "hr.employee.lifecycle.v1", map[string]string{"employee_id": "emp-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"employee_id":"emp-1"}`, string(event.Payload))

	_, err = kafka.NewOutboxEvent("req", "employee", "emp-1", "employee_created", "", map[string]string{})
	assert.Error(t, err)
}

func TestOutboxRepository_CreateWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event, err := kafka.NewOutboxEvent("req", "employee", "emp-1", "employee_created", "hr.employee.lifecycle.v1", map[string]string{"employee_id": "emp-1"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(event.ID, "req", "employee", "emp-1", "employee_created", "hr.employee.lifecycle.v1", event.Payload, kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	require.NoError(t, repo.Create(context.Background(), event))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("o-1", "req-9", "employee", "emp-1", "employee_created", "hr.employee.lifecycle.v1", []byte(`{}`), "pending", 0, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "emp-1", events[0].AggregateID)
	assert.Equal(t, "hr.employee.lifecycle.v1", events[0].Topic)
	assert.Equal(t, "req-9", events[0].RequestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("o-1", kafka.OutboxStatusFailed, "broker unavailable", kafka.MaxOutboxRetries, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker unavailable")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
