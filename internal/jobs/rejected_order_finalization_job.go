package jobs

import (
	"context"
	"log/slog"
	"time"

	"epharmacy/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const finalizationBatchSize = 100

// FinalizeRejectedOrdersHandler is implemented by commands.FinalizeRejectedOrdersCommandHandler.
type FinalizeRejectedOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.FinalizeRejectedOrdersCommand) (int, error)
}

// RejectedOrderFinalizationJob cancels orders that stayed Rejected longer than
// the grace period.
type RejectedOrderFinalizationJob struct {
	handler     FinalizeRejectedOrdersHandler
	schedule    string
	gracePeriod time.Duration
	now         func() time.Time
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewRejectedOrderFinalizationJob creates the job. schedule is a cron spec with
// seconds or a descriptor such as "@every 1m".
func NewRejectedOrderFinalizationJob(
	handler FinalizeRejectedOrdersHandler,
	schedule string,
	gracePeriod time.Duration,
	logger *slog.Logger,
) *RejectedOrderFinalizationJob {
	return &RejectedOrderFinalizationJob{
		handler:     handler,
		schedule:    schedule,
		gracePeriod: gracePeriod,
		now:         time.Now,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "rejected_order_finalization_job"),
	}
}

// Start schedules the job.
func (j *RejectedOrderFinalizationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rejected order finalization job started",
		"schedule", j.schedule, "grace_period", j.gracePeriod)
	return nil
}

// Run performs one finalization pass and returns the number of cancelled orders.
func (j *RejectedOrderFinalizationJob) Run(ctx context.Context) int {
	cmd, err := commands.NewFinalizeRejectedOrdersCommand(j.now(), j.gracePeriod, finalizationBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Rejected order finalization job misconfigured", "error", err)
		return 0
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Rejected orders cancelled", "count", cancelled)
	}
	for _, failure := range failures(err) {
		j.logger.ErrorContext(ctx, "Rejected order finalization failed", "error", failure)
	}
	return cancelled
}

// Stop stops the job.
func (j *RejectedOrderFinalizationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rejected order finalization job stopped")
}

// failures splits a joined batch error into the errors of single orders.
func failures(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // splitting errors.Join
		return joined.Unwrap()
	}
	return []error{err}
}
