package libs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"catering-shop/models"
)

// RelayClient submits finalized orders to the external form-relay endpoint.
// The relay handles notification delivery and is opaque to this service; no
// retries are attempted.
type RelayClient struct {
	endpoint string
	client   *http.Client
}

func NewRelayClient(endpoint string) *RelayClient {
	return &RelayClient{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

// Submit posts the order as a urlencoded form. The field names are a contract
// with the relay's static form schema and must remain stable.
func (c *RelayClient) Submit(ctx context.Context, payload models.OrderPayload) error {
	form := url.Values{}
	form.Set("name", payload.Name)
	form.Set("email", payload.Email)
	form.Set("phone", payload.Phone)
	form.Set("order-number", payload.OrderNumber)
	form.Set("order-items", payload.Items)
	form.Set("order-subtotal", payload.Subtotal)
	form.Set("order-fees", payload.Fees)
	form.Set("order-grand-total", payload.GrandTotal)
	form.Set("order-delivery-option", payload.DeliveryOption)
	form.Set("order-address", payload.Address)
	form.Set("order-pickup-time", payload.PickupTime)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay transport: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}
