package consumer

import (
	"context"
	"encoding/json"

	"github.com/niru8756/internal-portal-sub003/internal/events"
	"github.com/niru8756/internal-portal-sub003/internal/onboarding"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle menangani event employee_created: karyawan baru
// langsung diberi starter kit resource lewat onboarding service.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	onboardingService onboarding.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		summary, err := onboardingService.EnsureResources(ctx, event.EmployeeID, "")
		if err != nil {
			log.Error("onboarding from employee_created event failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("onboarding ensured from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.Int("assigned", summary.Assigned),
			zap.Int("created", summary.Created),
			zap.Int("skipped", summary.Skipped),
			zap.Strings("errors", summary.Errors),
		)
	}
}
