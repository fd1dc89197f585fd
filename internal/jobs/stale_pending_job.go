package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// stalePendingAfter is how long an order may sit unassigned before it is
// worth an operator's attention.
const stalePendingAfter = 10 * time.Minute

// StalePendingJob warns about orders that have been pending for too long,
// usually because no staff member was eligible when they were placed. It only
// alerts; re-assignment stays a human decision.
type StalePendingJob struct {
	orderRepository ports.OrderRepository
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewStalePendingJob creates a new stale pending order alert job.
func NewStalePendingJob(orderRepository ports.OrderRepository, logger *slog.Logger) *StalePendingJob {
	return &StalePendingJob{
		orderRepository: orderRepository,
		cron:            cron.New(cron.WithSeconds()),
		logger:          logger.With("component", "stale_pending_job"),
	}
}

// Start begins checking for stale pending orders once a minute.
func (j *StalePendingJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.check(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale pending check failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale pending job started (running every minute)")
	return nil
}

// Stop stops the stale pending job.
func (j *StalePendingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale pending job stopped")
}

func (j *StalePendingJob) check(ctx context.Context) error {
	pending, err := j.orderRepository.ListByStatus(ctx, order.Pending)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-stalePendingAfter)
	for _, aggregate := range pending {
		if aggregate.CreatedAt().After(cutoff) {
			continue
		}
		j.logger.WarnContext(ctx, "Order pending for too long without an assignee",
			"orderNumber", aggregate.Number(),
			"orderId", aggregate.ID(),
			"pendingFor", time.Since(aggregate.CreatedAt()).Round(time.Second),
		)
	}
	return nil
}
