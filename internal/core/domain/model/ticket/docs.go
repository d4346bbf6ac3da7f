// Package ticket contains the KitchenTicket aggregate root.
//
// A kitchen ticket is the subset of one order's items assigned to a single
// preparation station. Its identity, the ticket number, is derived
// deterministically from the order number and the station code, so the
// router's derivation pass can be repeated (after a retry or a crash)
// without ever creating a duplicate ticket.
//
// Tickets progress Queued -> InProgress -> Completed independently per
// station; Voided is reached from Queued or InProgress when the parent
// order is cancelled. The order's Preparing/Ready states are aggregated
// from ticket progress by services.TicketRouter.
package ticket
