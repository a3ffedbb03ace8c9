package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	rejectedOrderFinalizationJob *RejectedOrderFinalizationJob
}

// Schedule configures when the jobs run.
type Schedule struct {
	RejectedOrderFinalization string
	RejectedOrderGracePeriod  time.Duration
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	finalizeRejectedOrdersHandler FinalizeRejectedOrdersHandler,
	schedule Schedule,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		rejectedOrderFinalizationJob: NewRejectedOrderFinalizationJob(
			finalizeRejectedOrdersHandler,
			schedule.RejectedOrderFinalization,
			schedule.RejectedOrderGracePeriod,
			logger,
		),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.rejectedOrderFinalizationJob.Start(); err != nil {
		return fmt.Errorf("failed to start rejected order finalization job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.rejectedOrderFinalizationJob.Stop()
}
