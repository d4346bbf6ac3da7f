// Package pos contains the point-of-sale aggregates: Session and
// Transaction.
//
// A Session is an operator's working period at one terminal; at most one
// session per terminal is open at a time (enforced by the repository's
// open-session lookup plus a partial unique index). A Transaction settles
// one or more served orders inside a session: orders are attached while the
// transaction is pending, the capture checks the tendered amount against
// the computed total, and a void while the session is still open reverts
// the attached orders so they can be re-settled. Void is all-or-nothing per
// transaction; partial voids are not modeled.
package pos
