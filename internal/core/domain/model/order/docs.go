// Package order provides domain entities and business logic for restaurant order
// management. It implements the Order aggregate root with lifecycle management,
// price-snapshotted line items, and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing order identity, items, totals, and lifecycle
//   - Item: A value object capturing a menu item reference, quantity, and the unit
//     price snapshotted at ordering time
//   - Status: A state machine that enforces valid order status transitions
//   - NewNumber: Collision-resistant generation of human-readable order numbers
//
// Key business rules:
//   - The order total is always the sum of quantity times snapshotted unit price;
//     it is recomputed from the items, never mutated independently
//   - Status follows a defined workflow: pending -> preparing -> ready -> completed
//     -> billed, with cancellation permitted from any pre-completed state
//   - Cancelled and billed are terminal states
//   - Ready and completed require an assigned staff member
//   - Customer-initiated cancellation is only permitted inside a fixed window
//     after creation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
