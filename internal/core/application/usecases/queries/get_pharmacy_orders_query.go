package queries

import (
	"errors"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var (
	ErrGetPharmacyOrdersQueryIsNotConstructed = errors.New(
		"GetPharmacyOrdersQuery must be created via NewGetPharmacyOrdersQuery constructor",
	)
)

// GetPharmacyOrdersQuery lists the orders of one pharmacy for its staff,
// optionally restricted to a single status.
//
// Example:
//
//	approved := order.Approved
//	query, err := NewGetPharmacyOrdersQuery(pharmacyID, userID, false, &approved)
type GetPharmacyOrdersQuery struct {
	pharmacyID  kernel.UUID
	requesterID kernel.UUID
	isAdmin     bool
	status      *order.Status
	guard       guard.ConstructorGuard
}

// NewGetPharmacyOrdersQuery creates the query. A non-admin requester must carry
// a user id; a status filter, when given, must be a defined status.
func NewGetPharmacyOrdersQuery(
	pharmacyID kernel.UUID,
	requesterID kernel.UUID,
	isAdmin bool,
	status *order.Status,
) (GetPharmacyOrdersQuery, error) {
	var validationErrs []error
	if err := pharmacyID.Validate(); err != nil {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredErrorWithCause("pharmacyID", err))
	}
	if !isAdmin {
		if err := requesterID.Validate(); err != nil {
			validationErrs = append(validationErrs, errs.NewValueIsRequiredErrorWithCause("requesterID", err))
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			validationErrs = append(validationErrs, err)
		}
	}
	if err := errors.Join(validationErrs...); err != nil {
		return GetPharmacyOrdersQuery{}, err
	}

	var filter *order.Status
	if status != nil {
		s := *status
		filter = &s
	}

	return GetPharmacyOrdersQuery{
		pharmacyID:  pharmacyID,
		requesterID: requesterID,
		isAdmin:     isAdmin,
		status:      filter,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPharmacyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPharmacyOrdersQueryIsNotConstructed)
}

func (q GetPharmacyOrdersQuery) PharmacyID() kernel.UUID  { return q.pharmacyID }
func (q GetPharmacyOrdersQuery) RequesterID() kernel.UUID { return q.requesterID }
func (q GetPharmacyOrdersQuery) IsAdmin() bool            { return q.isAdmin }

// Status returns the status filter, or nil for all statuses.
func (q GetPharmacyOrdersQuery) Status() *order.Status {
	return q.status
}
