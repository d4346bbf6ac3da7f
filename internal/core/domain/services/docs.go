// Package services contains stateless domain services that coordinate
// logic spanning more than one aggregate: the TicketRouter, which splits a
// confirmed order into per-station kitchen tickets and folds ticket
// progress back into order readiness, and the SettlementCalculator, which
// computes settlement and session cash figures from orders and
// transactions.
package services
