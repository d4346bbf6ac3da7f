// Package order contains the Order aggregate root and its state machine.
//
// An order moves through
//
//	Draft ──> Confirmed ──> Preparing ──> Ready ──> Served ──> Settled
//
// with Cancelled reachable from every state before Served. Settled and
// Cancelled are terminal. Preparing and Ready are not entered directly by
// clients: they are derived from the progress of the order's kitchen
// tickets (see the ticket package and services.TicketRouter).
//
// The aggregate owns its items. Each item snapshots the catalog price and
// preparation station at confirmation time and is never re-resolved, and
// each item tracks its own sub-state (Pending, Preparing, Ready) driven by
// its station's ticket. Monetary totals are recomputed on every item or
// discount change and always satisfy total = subtotal + tax − discount.
package order
