package commands

import (
	"context"
	"errors"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
)

// Business rule violations reported by command handlers in addition to the
// domain ones.
var (
	ErrUnauthorizedPharmacyAccess = errs.NewBusinessRuleError("unauthorized_pharmacy_access")
	ErrOrderNotFound              = errs.NewBusinessRuleError("not_found")
)

// authorize checks that a non-admin requester is an active member of the pharmacy.
func authorize(
	ctx context.Context,
	uow MembershipRepoFactory,
	pharmacyID, requesterID kernel.UUID,
	isAdmin bool,
) error {
	if isAdmin {
		return nil
	}

	ok, err := uow.MembershipRepository().ExistsActive(ctx, pharmacyID, requesterID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorizedPharmacyAccess
	}
	return nil
}

// notFoundAsReason turns a repository miss into the not_found business outcome.
func notFoundAsReason(err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	return err
}
