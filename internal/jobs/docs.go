// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RejectedOrderFinalizationJob cancels orders that stayed Rejected longer than a
// grace period, following the regular status transition rules with one
// transaction per order.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(finalizeHandler, jobs.Schedule{
//		RejectedOrderFinalization: "@every 1m",
//		RejectedOrderGracePeriod:  24 * time.Hour,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the seconds-enabled cron syntax ("0 */5 * * * *") or descriptors
// such as "@every 1m".
//
// # Error Handling
//
// A failing order does not stop the batch; every failure is logged per order.
// Orders that staff moved on, or rejected again, after the listing are skipped
// by the handler once their row is locked.
package jobs
