package order

import "epharmacy/internal/pkg/errs"

// Business rule violations reported by the order aggregate.
var (
	ErrPaymentMethodNotSupported = errs.NewBusinessRuleError("payment_method_not_supported")
	ErrAlreadyFinalized          = errs.NewBusinessRuleError("already_finalized")
	ErrInvalidTransition         = errs.NewBusinessRuleError("invalid_transition")
	ErrStatusInvalid             = errs.NewBusinessRuleError("status_invalid")
	ErrPrescriptionMissing       = errs.NewBusinessRuleError("prescription_missing")
	ErrPrescriptionStatusInvalid = errs.NewBusinessRuleError("prescription_status_invalid")
)
