package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/murkotick/stock-alert-service/internal/app/product/sweep"
	"github.com/murkotick/stock-alert-service/internal/pkg/logger"
)

const (
	// QueueDefault is the queue the sweep is enqueued on.
	QueueDefault = "default"
	// TaskExpirationSweep is the task type of the daily expiration sweep.
	TaskExpirationSweep = "inventory:expiration_sweep"
)

// SweepPayload identifies what triggered a sweep.
type SweepPayload struct {
	Trigger string `json:"trigger"`
}

// NewExpirationSweepTask builds a sweep task.
func NewExpirationSweepTask(trigger string) (*asynq.Task, error) {
	data, err := json.Marshal(SweepPayload{Trigger: trigger})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskExpirationSweep, data), nil
}

// SweepRunner runs one expiration sweep.
type SweepRunner interface {
	Run(ctx context.Context) (sweep.Summary, error)
}

// NewSweepHandler adapts runner to an asynq handler. A malformed payload is
// not retried; a failed run is, per the task's retry options.
func NewSweepHandler(runner SweepRunner, log *zap.Logger) asynq.HandlerFunc {
	log = logger.OrNop(log)
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SweepPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Warn("discarding malformed sweep task", zap.Error(err))
			return fmt.Errorf("decode sweep payload: %v: %w", err, asynq.SkipRetry)
		}

		summary, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("expiration sweep: %w", err)
		}
		log.Info("sweep task done",
			zap.String("trigger", payload.Trigger),
			zap.Int("raised", summary.Raised),
			zap.Int("failed", summary.Failed),
		)
		return nil
	}
}
