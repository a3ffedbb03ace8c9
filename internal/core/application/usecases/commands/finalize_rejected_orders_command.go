package commands

import (
	"errors"
	"fmt"
	"time"

	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

const defaultFinalizeBatchSize = 100

var ErrFinalizeRejectedOrdersCommandIsNotConstructed = errors.New(
	"FinalizeRejectedOrdersCommand must be created via NewFinalizeRejectedOrdersCommand constructor",
)

// FinalizeRejectedOrdersCommand cancels orders that stayed Rejected for longer
// than a grace period.
type FinalizeRejectedOrdersCommand struct { //nolint:recvcheck //using for validation
	cutoff    time.Time
	batchSize int

	guard guard.ConstructorGuard
}

// NewFinalizeRejectedOrdersCommand selects orders last updated before now minus
// gracePeriod. A batchSize of 0 means the default batch size.
func NewFinalizeRejectedOrdersCommand(
	now time.Time,
	gracePeriod time.Duration,
	batchSize int,
) (FinalizeRejectedOrdersCommand, error) {
	if gracePeriod < 0 {
		return FinalizeRejectedOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("gracePeriod",
			fmt.Errorf("%s is negative", gracePeriod))
	}
	if batchSize < 0 {
		return FinalizeRejectedOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 0, "+inf")
	}
	if batchSize == 0 {
		batchSize = defaultFinalizeBatchSize
	}

	return FinalizeRejectedOrdersCommand{
		cutoff:    now.Add(-gracePeriod).UTC(),
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeRejectedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeRejectedOrdersCommandIsNotConstructed)
}

func (c FinalizeRejectedOrdersCommand) Cutoff() time.Time { return c.cutoff }
func (c FinalizeRejectedOrdersCommand) BatchSize() int    { return c.batchSize }
