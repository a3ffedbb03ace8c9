package order

import (
	"fmt"

	"epharmacy/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Transitions applied by pharmacists and admins (see transitions):
//
//	Pending ──> AwaitingPrescriptionReview ──> Approved ──> Preparing ──> ReadyForDelivery ──> OutForDelivery ──> Completed
//	   │                  │                       │             │                │                   │
//	   │                  └───────> Rejected      └─────────────┴────────────────┴───────────────────┴──> Cancelled
//	   └──> Approved, Rejected         └──────────────────────────────────────────────────────────────────> Cancelled
//
// Completed and Cancelled are terminal. The numeric values are persisted and
// must not change.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of every order.
	Pending

	// AwaitingPrescriptionReview means a pharmacist has to look at the prescription.
	AwaitingPrescriptionReview

	// Approved means the pharmacy accepted the order.
	Approved

	// Rejected means the pharmacy or the prescription review refused the order.
	Rejected

	Preparing
	ReadyForDelivery
	OutForDelivery

	// Completed means the order was delivered. Terminal.
	Completed

	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:                    "Unknown",
	Pending:                    "Pending",
	AwaitingPrescriptionReview: "AwaitingPrescriptionReview",
	Approved:                   "Approved",
	Rejected:                   "Rejected",
	Preparing:                  "Preparing",
	ReadyForDelivery:           "ReadyForDelivery",
	OutForDelivery:             "OutForDelivery",
	Completed:                  "Completed",
	Cancelled:                  "Cancelled",
}

// transitions is the legal next-state table for ChangeStatus. Statuses that are
// not keys have no outgoing edges.
var transitions = map[Status]map[Status]struct{}{
	Pending:                    {Approved: {}, Rejected: {}, AwaitingPrescriptionReview: {}},
	AwaitingPrescriptionReview: {Approved: {}, Rejected: {}},
	Approved:                   {Preparing: {}, Cancelled: {}},
	Preparing:                  {ReadyForDelivery: {}, Cancelled: {}},
	ReadyForDelivery:           {OutForDelivery: {}, Cancelled: {}},
	OutForDelivery:             {Completed: {}, Cancelled: {}},
	Rejected:                   {Cancelled: {}},
}

// Statuses returns every valid status in numeric order.
func Statuses() []Status {
	return []Status{
		Pending,
		AwaitingPrescriptionReview,
		Approved,
		Rejected,
		Preparing,
		ReadyForDelivery,
		OutForDelivery,
		Completed,
		Cancelled,
	}
}

// ParseStatus converts a status name (as returned by String) into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the defined statuses. Unknown is invalid.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether ChangeStatus refuses every transition out of s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the table allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	_, ok := transitions[s][next]
	return ok
}

// ValidateTransition checks s -> next against the terminal lock and the table.
func (s Status) ValidateTransition(next Status) error {
	if next == Pending || next.Validate() != nil {
		return ErrStatusInvalid
	}
	if s.IsTerminal() {
		return ErrAlreadyFinalized
	}
	if !s.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}
