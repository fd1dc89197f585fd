// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. OrderMetricsJob - Runs every minute to snapshot per-status order counts into Redis
// 2. StalePendingJob - Runs every minute to warn about orders stuck without an assignee
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required jobs
//	jobManager := jobs.NewJobManager(orderMetricsJob, stalePendingJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Jobs log their own failures and keep running on the next tick
// - The metrics job is optional and skipped when Redis is not configured
// - Failed job starts will stop any already running jobs
package jobs
