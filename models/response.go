package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// CartBadge is the item-count indicator state shown on the cart icon(s).
type CartBadge struct {
	Count  int  `json:"count"`
	Active bool `json:"active"`
}

type CartItemView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TraySize  string `json:"tray_size"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// CartView is the rendered cart: rows, totals and badge recomputed in full on
// every mutation. Empty tells the client to hide the checkout and booking
// sections.
type CartView struct {
	Items  []CartItemView `json:"items"`
	Empty  bool           `json:"empty"`
	Badge  CartBadge      `json:"badge"`
	Totals TotalsView     `json:"totals"`
}
