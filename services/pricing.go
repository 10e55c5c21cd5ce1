package services

import (
	"catering-shop/models"

	"github.com/shopspring/decimal"
)

// FeeSchedule holds the storefront's flat fees. The processing fee applies to
// every order; the delivery fee only when delivery is selected.
type FeeSchedule struct {
	Processing decimal.Decimal
	Delivery   decimal.Decimal
}

// CalculateTotals is the single totals computation shared by the cart view and
// the checkout gate.
func CalculateTotals(subtotal decimal.Decimal, deliverySelected bool, fees FeeSchedule) models.Totals {
	deliveryFee := decimal.Zero
	if deliverySelected {
		deliveryFee = fees.Delivery
	}

	return models.Totals{
		Subtotal:      subtotal,
		ProcessingFee: fees.Processing,
		DeliveryFee:   deliveryFee,
		GrandTotal:    subtotal.Add(fees.Processing).Add(deliveryFee),
	}
}
