package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var ErrReviewPrescriptionCommandIsNotConstructed = errors.New(
	"ReviewPrescriptionCommand must be created via NewReviewPrescriptionCommand constructor",
)

// ReviewPrescriptionCommand records a pharmacist's decision on an order's prescription.
type ReviewPrescriptionCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	pharmacyID kernel.UUID
	requester  Requester
	decision   order.PrescriptionStatus
	notes      string

	guard guard.ConstructorGuard
}

// NewReviewPrescriptionCommand creates the command. An unknown decision yields
// order.ErrPrescriptionStatusInvalid; notes are limited to order.MaxPharmacistNotesLength.
func NewReviewPrescriptionCommand(
	orderID kernel.UUID,
	pharmacyID kernel.UUID,
	requester Requester,
	decision order.PrescriptionStatus,
	notes string,
) (ReviewPrescriptionCommand, error) {
	cmd := ReviewPrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, "orderID", orderID),
		setID(&cmd.pharmacyID, "pharmacyID", pharmacyID),
		setRequester(&cmd.requester, requester),
		cmd.setDecision(decision),
		cmd.setNotes(notes),
	); err != nil {
		return ReviewPrescriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrReviewPrescriptionCommandIsNotConstructed)
}

func (c ReviewPrescriptionCommand) OrderID() kernel.UUID               { return c.orderID }
func (c ReviewPrescriptionCommand) PharmacyID() kernel.UUID            { return c.pharmacyID }
func (c ReviewPrescriptionCommand) Requester() Requester               { return c.requester }
func (c ReviewPrescriptionCommand) Decision() order.PrescriptionStatus { return c.decision }
func (c ReviewPrescriptionCommand) Notes() string                      { return c.notes }

func (c *ReviewPrescriptionCommand) setDecision(decision order.PrescriptionStatus) error {
	if err := decision.Validate(); err != nil {
		return err
	}
	c.decision = decision
	return nil
}

func (c *ReviewPrescriptionCommand) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > order.MaxPharmacistNotesLength {
		return errs.NewValueIsInvalidErrorWithCause("notes",
			fmt.Errorf("longer than %d characters", order.MaxPharmacistNotesLength))
	}
	c.notes = notes
	return nil
}
