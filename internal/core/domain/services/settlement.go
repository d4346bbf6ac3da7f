package services

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/pos"
)

// SettlementCalculator computes the money figures settlement works with.
// It is a pure service: all inputs come in as aggregates, nothing is read
// from storage here.
type SettlementCalculator struct{}

// NewSettlementCalculator creates a settlement calculator.
func NewSettlementCalculator() SettlementCalculator {
	return SettlementCalculator{}
}

// OrdersTotal sums the totals of the given orders.
func (SettlementCalculator) OrdersTotal(orders []*order.Order) kernel.Money {
	total := kernel.Zero()
	for _, o := range orders {
		total = total.Add(o.Total())
	}
	return total
}

// ExpectedCash computes the cash expected in the drawer at session close:
// the opening float plus the total of every captured cash transaction.
// The transaction total is what stays in the drawer; tendered cash above
// it leaves again as change. Voided transactions no longer count as
// captures, so a captured-then-voided cash payment drops out of the figure.
func (SettlementCalculator) ExpectedCash(session *pos.Session, transactions []*pos.Transaction) kernel.Money {
	expected := session.OpeningFloat()
	for _, tx := range transactions {
		if tx.IsCashCapture() {
			expected = expected.Add(tx.Total())
		}
	}
	return expected
}
