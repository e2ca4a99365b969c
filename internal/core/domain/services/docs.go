// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the warehouse system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ReportAggregator: Summary totals, per-product rollups and time-bucketed
//     chart series over a filtered shipment set
//   - NotificationDispatcher: Best-effort coordination of the two independent
//     notification channels (document email, text message)
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
