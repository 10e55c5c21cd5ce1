package models

import "github.com/shopspring/decimal"

// Totals is the single authoritative fee computation. The cart view and the
// checkout payload are both rendered from it; nothing re-parses display strings.
type Totals struct {
	Subtotal      decimal.Decimal
	ProcessingFee decimal.Decimal
	DeliveryFee   decimal.Decimal
	GrandTotal    decimal.Decimal
}

func (t Totals) FeesTotal() decimal.Decimal {
	return t.ProcessingFee.Add(t.DeliveryFee)
}

// TotalsView carries the 2-decimal presentation form of Totals.
type TotalsView struct {
	Subtotal      string `json:"subtotal"`
	ProcessingFee string `json:"processing_fee"`
	DeliveryFee   string `json:"delivery_fee"`
	GrandTotal    string `json:"grand_total"`
}

func (t Totals) View() TotalsView {
	return TotalsView{
		Subtotal:      t.Subtotal.StringFixed(2),
		ProcessingFee: t.ProcessingFee.StringFixed(2),
		DeliveryFee:   t.DeliveryFee.StringFixed(2),
		GrandTotal:    t.GrandTotal.StringFixed(2),
	}
}

// Delivery options accepted at checkout.
const (
	OptionDelivery = "delivery"
	OptionPickup   = "pickup"
)

// CheckoutRequest carries the checkout form. The binding tags mirror the
// storefront's required fields; address and zip are enforced by the gate when
// delivery is selected.
type CheckoutRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Consent        bool   `json:"consent" binding:"required"`
	DeliveryOption string `json:"delivery_option" binding:"required,oneof=delivery pickup"`
	Address        string `json:"address"`
	Zip            string `json:"zip"`
}

func (r CheckoutRequest) IsDelivery() bool {
	return r.DeliveryOption == OptionDelivery
}

// OrderPayload is the outbound order handed to the relay endpoint. Field names
// on the wire must match the external static form; see libs.RelayClient.
type OrderPayload struct {
	OrderNumber    string
	Name           string
	Email          string
	Phone          string
	Items          string
	Subtotal       string
	Fees           string
	GrandTotal     string
	DeliveryOption string
	Address        string
	PickupTime     string
}

// OrderReceipt is returned to the client after a successful hand-off.
type OrderReceipt struct {
	OrderNumber    string     `json:"order_number"`
	Totals         TotalsView `json:"totals"`
	DeliveryOption string     `json:"delivery_option"`
	PickupTime     string     `json:"pickup_time"`
}
