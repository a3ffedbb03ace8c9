// Package pharmacy provides the Pharmacy aggregate and the stock it owns.
//
// The package includes:
//   - Pharmacy: a storefront with a tenant status and its inventory
//   - InventoryItem: a stock-keeping record (price, quantity, prescription flag)
//   - TenantStatus: approval lifecycle of a pharmacy; only Active pharmacies sell
//   - Membership: a user's association with a pharmacy, used for access control
//
// Key business rules:
//   - Stock quantity of an inventory item never goes negative
//   - Inventory items are reachable only through their owning pharmacy
//   - A pharmacy accepts orders only while its tenant status is Active
package pharmacy
