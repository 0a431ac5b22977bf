package app

import (
	"context"
	"fmt"

	"go-hrm/internal/bootstrap"
	"go-hrm/internal/config"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka/consumer"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunConsumer runs every topic consumer until ctx is cancelled or one of
// them fails.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, sqlDB, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	svc := buildServices(cfg, sqlDB, gormDB, nil, bootstrap.NewStdoutAuditLogger(logger), logger)

	lifecycleReader := consumer.NewReader(cfg.Kafka.Broker, events.EmployeeLifecycleTopic, cfg.Kafka.ConsumerGroup+"-leave-balance")
	defer lifecycleReader.Close()
	payslipReader := consumer.NewReader(cfg.Kafka.Broker, events.PayslipRequestedTopic, cfg.Kafka.ConsumerGroup+"-payslip")
	defer payslipReader.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Run(gctx, lifecycleReader, "employee_lifecycle", consumer.EmployeeCreatedHandler(svc.leave), logger)
	})
	g.Go(func() error {
		return consumer.Run(gctx, payslipReader, "payslip_requested", consumer.PayslipRequestedHandler(svc.payslip), logger)
	})

	err = g.Wait()
	log.Info("consumer shutting down")
	return err
}
