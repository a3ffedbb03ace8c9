// Package kernel provides the shared value objects of the e-pharmacy domain.
//
// The package includes:
//   - UUID: identifier of every aggregate and entity; the nil UUID is invalid
//   - Money: decimal amount plus currency code, no conversion
//   - GeoCoordinate: latitude/longitude with range validation
//   - Address: postal delivery address
//
// Value objects are immutable, can only be obtained through their constructors
// and report every constructor violation at once via errors.Join.
package kernel
