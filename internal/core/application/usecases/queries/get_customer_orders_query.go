package queries

import (
	"errors"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
)

// GetCustomerOrdersQuery lists the orders placed by one customer, newest first.
//
// Example:
//
//	query, err := NewGetCustomerOrdersQuery(customerID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates the query for a valid customer id.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}

	return GetCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}
