package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/niru8756/internal-portal-sub003/internal/assignment"
	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	"github.com/niru8756/internal-portal-sub003/internal/events"
	"github.com/niru8756/internal-portal-sub003/internal/messaging/kafka/consumer"
	"github.com/niru8756/internal-portal-sub003/internal/onboarding"
	"github.com/niru8756/internal-portal-sub003/internal/resource"
	"github.com/niru8756/internal-portal-sub003/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	resourceRepo := resource.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	recorder := audit.NewRecorder(auditRepo)

	assignmentService := assignment.NewService(sqlDB, assignmentRepo, resourceRepo, recorder)
	onboardingService := onboarding.NewService(
		assignmentService,
		resourceRepo,
		employeeRepo,
		onboarding.Config{
			StarterResources: splitCSV(os.Getenv("ONBOARDING_STARTER_RESOURCES")),
			DefaultActorID:   os.Getenv("DEFAULT_APPROVER_ID"),
		},
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        strings.Split(kafkaBroker, ","),
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "internal-portal-onboarding",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, onboardingService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
