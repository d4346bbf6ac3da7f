package order

import "orderflow/internal/pkg/errs"

// Type is the fulfilment type of an order.
type Type int

const (
	DineIn Type = iota + 1
	Takeaway
	Delivery
)

func (t Type) String() string {
	switch t {
	case DineIn:
		return "DineIn"
	case Takeaway:
		return "Takeaway"
	case Delivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}

// Validate checks that the type is one of the defined fulfilment types.
func (t Type) Validate() error {
	if t < DineIn || t > Delivery {
		return errs.NewValueIsInvalidError("order type")
	}
	return nil
}
