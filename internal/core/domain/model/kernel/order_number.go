package kernel

import (
	"fmt"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// orderNumberPrefix is the fixed prefix of every order number.
const orderNumberPrefix = "ORD"

// ErrOrderNumberIsRequired is returned when validating an empty OrderNumber.
var ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")

// OrderNumber is the human-readable, globally unique identity of an order,
// in the form "ORD-YYYYMMDD-XXXXXX". The date segment makes numbers easy to
// read over the counter; the suffix is random, so order numbers can be
// minted without coordinating through a counter.
//
// Kitchen ticket numbers are derived from the order number (see the ticket
// package), which is what makes ticket derivation idempotent.
type OrderNumber struct {
	value string
}

// NewOrderNumber mints a new order number for the given day.
// The six-character suffix is taken from a random UUID, which is more than
// enough entropy for a per-restaurant daily order stream.
func NewOrderNumber(now time.Time) OrderNumber {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return OrderNumber{
		value: fmt.Sprintf("%s-%s-%s", orderNumberPrefix, now.UTC().Format("20060102"), suffix),
	}
}

// OrderNumberFromString restores an order number from persistence.
// Only emptiness and the prefix are checked; the number is otherwise opaque.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if s == "" {
		return OrderNumber{}, ErrOrderNumberIsRequired
	}
	if !strings.HasPrefix(s, orderNumberPrefix+"-") {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not start with %q", s, orderNumberPrefix+"-"))
	}
	return OrderNumber{value: s}, nil
}

// String returns the order number text.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual reports whether two order numbers are the same.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate returns an error for the zero value.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsRequired
	}
	return nil
}
