package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderMetricsJob *OrderMetricsJob
	stalePendingJob *StalePendingJob
}

// NewJobManager creates a new job manager. The metrics job may be nil when
// Redis is not configured; it is then skipped entirely.
func NewJobManager(orderMetricsJob *OrderMetricsJob, stalePendingJob *StalePendingJob) *JobManager {
	return &JobManager{
		orderMetricsJob: orderMetricsJob,
		stalePendingJob: stalePendingJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalePendingJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale pending job: %w", err)
	}

	if jm.orderMetricsJob != nil {
		if err := jm.orderMetricsJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.stalePendingJob.Stop()
			return fmt.Errorf("failed to start order metrics job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.orderMetricsJob != nil {
		jm.orderMetricsJob.Stop()
	}
	jm.stalePendingJob.Stop()
}
