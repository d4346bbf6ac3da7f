// Package kernel contains the shared value objects of the domain model:
// identifiers, money, and order numbers. Kernel types are immutable,
// validated on construction, and safe for concurrent use. Aggregates in
// the order, ticket, and pos packages build on them.
package kernel
