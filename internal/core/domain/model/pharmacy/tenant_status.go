package pharmacy

import (
	"fmt"

	"epharmacy/internal/pkg/errs"
)

// TenantStatus is the approval state of a pharmacy storefront.
//
//	PendingApproval ──> Active <──> Suspended
//	        │             │
//	        └─────────────┴──────> Deactivated
type TenantStatus int

const (
	// TenantStatusUnknown catches uninitialized values.
	TenantStatusUnknown TenantStatus = iota
	PendingApproval
	Active
	Suspended
	Deactivated
)

func getTenantStatusStrings() map[TenantStatus]string {
	return map[TenantStatus]string{
		TenantStatusUnknown: "Unknown",
		PendingApproval:     "PendingApproval",
		Active:              "Active",
		Suspended:           "Suspended",
		Deactivated:         "Deactivated",
	}
}

// Validate rejects TenantStatusUnknown and out-of-range values.
func (s TenantStatus) Validate() error {
	if s <= TenantStatusUnknown || s > Deactivated {
		return errs.NewValueIsInvalidErrorWithCause("tenant status is invalid",
			fmt.Errorf("%d is not a valid tenant status", s))
	}
	return nil
}

func (s TenantStatus) String() string {
	if str, ok := getTenantStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
