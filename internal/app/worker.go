package app

import (
	"context"
	"fmt"

	"go-hrm/internal/config"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/messaging/kafka/producer"
	"go-hrm/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes pending outbox events until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	_, sqlDB, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.App.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		kafkaWriter,
		log,
		cfg.Kafka.OutboxPollInterval,
	)

	log.Info("worker shutting down")
	return nil
}
