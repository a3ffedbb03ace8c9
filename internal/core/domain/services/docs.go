// Package services provides domain services that orchestrate business operations
// across multiple aggregates of the e-pharmacy domain.
//
// The package includes:
//   - OrderPlacement: validates an order request against a pharmacy's inventory,
//     builds the Order aggregate and reserves the stock it consumes
//
// Domain services hold no state and perform no I/O; loading and saving the
// aggregates is left to the application layer.
package services
