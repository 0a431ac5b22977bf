package consumer

import (
	"context"
	"errors"

	"go-hrm/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrSkipMessage marks a message that can never succeed (bad payload,
// duplicate). It is committed and dropped instead of retried.
var ErrSkipMessage = errors.New("skip message")

// MessageReader is the part of *kafkago.Reader the loop uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Handler func(ctx context.Context, msg kafkago.Message) error

func NewReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// Run fetches until ctx is cancelled. A failed message is left uncommitted
// so the group redelivers it after a rebalance or restart.
func Run(ctx context.Context, reader MessageReader, name string, handle Handler, logger *zap.Logger) error {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return nil
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		msgCtx := ctx
		if rid := headerValue(msg, "request_id"); rid != "" {
			msgCtx = contextutil.WithRequestID(ctx, rid)
		}

		msgLog := log.With(contextutil.LogFields(msgCtx)...)
		msgCtx = contextutil.WithLogger(msgCtx, msgLog)

		if err := handle(msgCtx, msg); err != nil {
			if !errors.Is(err, ErrSkipMessage) {
				msgLog.Error("handle message failed",
					zap.String("event_type", headerValue(msg, "event_type")),
					zap.Int64("offset", msg.Offset),
					zap.Int("partition", msg.Partition),
					zap.Error(err),
				)
				continue
			}
			msgLog.Warn("message skipped", zap.Int64("offset", msg.Offset), zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
