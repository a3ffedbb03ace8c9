// Package order provides the Order aggregate of the e-pharmacy domain together
// with its line items, the attached prescription and the status state machine.
//
// The package includes:
//   - Order: the aggregate root owning line items and an optional prescription
//   - Item: an immutable snapshot of a medicine at the moment it was ordered
//   - Prescription: the uploaded prescription and its review outcome
//   - Status: order lifecycle states with a static transition table
//   - PaymentMethod, PaymentStatus, PrescriptionStatus: supporting enums
//
// Order status is changed by two independent authorities:
//   - Order.ChangeStatus follows the transition table, used by pharmacists and admins
//   - Order.ApplyPrescriptionDecision follows the prescription review cascade
//
// Both end in a status that is reachable from Pending over the union of the two
// edge sets, which IsReachable checks.
//
// Key business rules:
//   - Completed and Cancelled are terminal for ChangeStatus
//   - Completing an order captures its payment
//   - Ordering the same medicine twice merges the lines
//   - Totals are computed from item snapshots, never from live inventory
package order
