// Package shipment provides domain entities and business logic for shipment
// management in the warehouse system. It implements the Shipment aggregate
// root with its owned item collection, lifecycle state machine and the
// shared shipment filter.
//
// The package includes:
//   - Shipment: The aggregate root that manages identity, items, notifications
//     and lifecycle
//   - Item: An owned line with a derived total and a Regular/Return bucket tag
//   - Status: A state machine with an explicit transition table and a
//     deliberate force-set escape hatch
//   - Filter: A conjunctive predicate shared by listing and reporting
//
// Key business rules:
//   - Shipments start in Draft with Regular items only; Return items are
//     appended later, even after confirmation
//   - Every item keeps totalPrice == quantity * unitPrice across mutations
//   - The shipment number is immutable and unique
//   - Delivered and Cancelled are terminal statuses
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
