package pos

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrTransactionIsNotConstructed is returned when a Transaction was not
	// created through NewTransaction or RestoreTransaction.
	ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction or RestoreTransaction")

	// ErrOrderAlreadyAttached is returned when an order id is attached to
	// the same transaction twice.
	ErrOrderAlreadyAttached = errs.NewValueIsInvalidError("order is already attached to this transaction")

	// ErrNoOrdersAttached is returned when capturing an empty transaction.
	ErrNoOrdersAttached = errs.NewValueIsRequiredError("at least one attached order")
)

// PaymentMethod is how a transaction was paid.
type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota + 1
	PaymentCard
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	default:
		return "Unknown"
	}
}

// Validate checks that the method is one of the defined payment methods.
func (m PaymentMethod) Validate() error {
	if m != PaymentCash && m != PaymentCard {
		return errs.NewValueIsInvalidError("payment method")
	}
	return nil
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus int

const (
	// TransactionPending means orders are being attached; nothing captured.
	TransactionPending TransactionStatus = iota + 1
	// TransactionCaptured means payment was taken and orders settled.
	TransactionCaptured
	// TransactionVoided means the transaction was reversed. Terminal.
	TransactionVoided
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionPending:
		return "Pending"
	case TransactionCaptured:
		return "Captured"
	case TransactionVoided:
		return "Voided"
	default:
		return "Unknown"
	}
}

// Validate checks that the status is one of the defined transaction states.
func (s TransactionStatus) Validate() error {
	if s < TransactionPending || s > TransactionVoided {
		return errs.NewValueIsInvalidError("transaction status")
	}
	return nil
}

// Transaction settles one or more orders inside a POS session.
//
// Invariants:
//   - total equals the sum of the attached orders' totals minus the
//     transaction-level discount (the attach path accumulates the sum).
//   - An order belongs to at most one non-voided transaction; the
//     cross-transaction half of that rule is enforced by the settlement
//     handler through the repository's non-voided-by-order lookup.
type Transaction struct {
	id             kernel.UUID
	sessionID      kernel.UUID
	orderIDs       []kernel.UUID
	ordersTotal    kernel.Money
	discount       kernel.Money
	method         PaymentMethod
	amountTendered kernel.Money
	status         TransactionStatus
	createdAt      time.Time
	capturedAt     *time.Time
	version        int64

	guard guard.ConstructorGuard
}

// NewTransaction creates an empty pending transaction in a session.
func NewTransaction(id, sessionID kernel.UUID, now time.Time) (*Transaction, error) {
	if err := errors.Join(id.Validate(), sessionID.Validate()); err != nil {
		return nil, err
	}

	return &Transaction{
		id:        id,
		sessionID: sessionID,
		status:    TransactionPending,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreTransaction reconstructs a transaction aggregate from persistence.
func RestoreTransaction(
	id, sessionID kernel.UUID,
	orderIDs []kernel.UUID,
	ordersTotal, discount, amountTendered kernel.Money,
	method PaymentMethod,
	status TransactionStatus,
	createdAt time.Time,
	capturedAt *time.Time,
	version int64,
) (*Transaction, error) {
	if err := errors.Join(id.Validate(), sessionID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Transaction{
		id:             id,
		sessionID:      sessionID,
		orderIDs:       orderIDs,
		ordersTotal:    ordersTotal,
		discount:       discount,
		amountTendered: amountTendered,
		method:         method,
		status:         status,
		createdAt:      createdAt,
		capturedAt:     capturedAt,
		version:        version,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the transaction was created through a constructor.
func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

// ID returns the transaction identifier.
func (t *Transaction) ID() kernel.UUID { return t.id }

// SessionID returns the owning session.
func (t *Transaction) SessionID() kernel.UUID { return t.sessionID }

// OrderIDs returns the attached orders.
func (t *Transaction) OrderIDs() []kernel.UUID { return t.orderIDs }

// OrdersTotal returns the sum of the attached orders' totals.
func (t *Transaction) OrdersTotal() kernel.Money { return t.ordersTotal }

// Discount returns the transaction-level discount.
func (t *Transaction) Discount() kernel.Money { return t.discount }

// Method returns the payment method, meaningful once captured.
func (t *Transaction) Method() PaymentMethod { return t.method }

// AmountTendered returns the amount taken at capture.
func (t *Transaction) AmountTendered() kernel.Money { return t.amountTendered }

// Status returns the settlement state.
func (t *Transaction) Status() TransactionStatus { return t.status }

// CreatedAt returns the creation timestamp.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// CapturedAt returns the capture timestamp, nil until captured.
func (t *Transaction) CapturedAt() *time.Time { return t.capturedAt }

// Version returns the optimistic-concurrency token.
func (t *Transaction) Version() int64 { return t.version }

// Total returns the settlement total: orders total minus the
// transaction-level discount.
func (t *Transaction) Total() kernel.Money {
	return t.ordersTotal.Sub(t.discount)
}

// AttachOrder adds an order and its total to the pending transaction.
func (t *Transaction) AttachOrder(orderID kernel.UUID, orderTotal kernel.Money) error {
	if t.status != TransactionPending {
		return errs.NewInvalidTransitionError("transaction", t.status.String(), "order attached")
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	for _, attached := range t.orderIDs {
		if attached.IsEqual(orderID) {
			return ErrOrderAlreadyAttached
		}
	}

	t.orderIDs = append(t.orderIDs, orderID)
	t.ordersTotal = t.ordersTotal.Add(orderTotal)
	return nil
}

// ApplyDiscount sets the transaction-level discount while pending.
func (t *Transaction) ApplyDiscount(discount kernel.Money) error {
	if t.status != TransactionPending {
		return errs.NewInvalidTransitionError("transaction", t.status.String(), "discount applied")
	}
	if err := discount.ValidateNonNegative("discount"); err != nil {
		return err
	}
	t.discount = discount
	return nil
}

// Capture takes payment for the transaction. The tendered amount must
// cover Total() within the rounding tolerance (minor units); any real
// shortfall fails with an amount-mismatch error. Change due for
// over-tendering is the caller's concern.
func (t *Transaction) Capture(amountTendered kernel.Money, method PaymentMethod, tolerance int64, now time.Time) error {
	if t.status != TransactionPending {
		return errs.NewInvalidTransitionError("transaction", t.status.String(), TransactionCaptured.String())
	}
	if len(t.orderIDs) == 0 {
		return ErrNoOrdersAttached
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if !amountTendered.Covers(t.Total(), tolerance) {
		return errs.NewAmountMismatchError(t.Total().Amount(), amountTendered.Amount())
	}

	t.status = TransactionCaptured
	t.method = method
	t.amountTendered = amountTendered
	captured := now.UTC()
	t.capturedAt = &captured
	return nil
}

// Void reverses the transaction. Legal from Pending and Captured; the
// session-must-still-be-open rule is checked by the handler, which also
// reverts the attached orders to Served.
func (t *Transaction) Void() error {
	if t.status == TransactionVoided {
		return errs.NewInvalidTransitionError("transaction", t.status.String(), TransactionVoided.String())
	}
	t.status = TransactionVoided
	return nil
}

// IsVoided reports whether the transaction has been reversed.
func (t *Transaction) IsVoided() bool { return t.status == TransactionVoided }

// IsCashCapture reports whether this is a captured cash transaction, the
// kind that counts toward the session's expected-cash figure.
func (t *Transaction) IsCashCapture() bool {
	return t.status == TransactionCaptured && t.method == PaymentCash
}
