package jobs

import (
	"context"
	"log/slog"

	"mealorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the sweep every hour on the hour. Stale orders
// only appear when a calendar day rolls over, so a tighter schedule buys
// nothing.
const DefaultExpirySchedule = "0 * * * *"

// OrderExpiryJob periodically cancels pending orders whose delivery date has
// passed. Each sweep handles every stale order it finds; an order contested by
// a concurrent writer is skipped and picked up on the next run.
type OrderExpiryJob struct {
	handler  commands.CancelExpiredOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the expiry sweep job. An empty schedule falls
// back to DefaultExpirySchedule.
func NewOrderExpiryJob(
	handler commands.CancelExpiredOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OrderExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &OrderExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "order_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelExpiredOrdersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep could not build its command", "error", cmdErr)
			return
		}

		cancelled, sweepErr := j.handler.Handle(ctx, cmd)
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed",
				"cancelled", cancelled, "error", sweepErr)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Order expiry sweep cancelled stale orders", "cancelled", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep. Already running sweeps finish their current order.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
