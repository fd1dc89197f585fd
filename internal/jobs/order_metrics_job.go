package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"restaurant/internal/core/domain/model/order"
)

// metricsTTL keeps daily snapshots around long enough for a dashboard to read
// yesterday's numbers, then lets them expire.
const metricsTTL = 48 * time.Hour

// OrderMetricsJob snapshots per-status order counts into a daily Redis hash
// every minute. The hash key is metrics:orders:<yyyy-mm-dd> and each field is
// a status name.
type OrderMetricsJob struct {
	db     *gorm.DB
	client *redis.Client
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOrderMetricsJob creates a new metrics snapshot job.
func NewOrderMetricsJob(db *gorm.DB, client *redis.Client, logger *slog.Logger) *OrderMetricsJob {
	return &OrderMetricsJob{
		db:     db,
		client: client,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "order_metrics_job"),
	}
}

// Start begins snapshotting order metrics once a minute.
func (j *OrderMetricsJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.snapshot(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order metrics snapshot failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order metrics job started (running every minute)")
	return nil
}

// Stop stops the metrics job.
func (j *OrderMetricsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order metrics job stopped")
}

func (j *OrderMetricsJob) snapshot(ctx context.Context) error {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status int
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		counts[order.Status(status).String()] = count
	}
	if err = rows.Err(); err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}

	fields := make([]any, 0, len(counts)*2)
	for status, count := range counts {
		fields = append(fields, status, count)
	}

	key := "metrics:orders:" + time.Now().UTC().Format("2006-01-02")
	if err = j.client.HSet(ctx, key, fields...).Err(); err != nil {
		return err
	}
	return j.client.Expire(ctx, key, metricsTTL).Err()
}
