package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"catering-shop/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrZipRequired        = errors.New("zip code is required for delivery")
	ErrZipNotAllowed      = errors.New("zip code is outside the delivery area")
	ErrAddressRequired    = errors.New("address is required for delivery")
	ErrBookingIncomplete  = errors.New("date and time must be selected")
	ErrDateFull           = errors.New("the selected date has just filled up")
	ErrSubmissionInFlight = errors.New("a submission is already being processed")
	ErrRelayFailed        = errors.New("order relay failed")
)

// AvailabilityCounter is the capacity counter boundary. Implemented by
// repositories.AvailabilityRepository.
type AvailabilityCounter interface {
	CountFor(ctx context.Context, date string) (int, error)
	IncrementDate(ctx context.Context, date string) (int, error)
}

// OrderRelay hands the finalized payload to the external relay endpoint.
// Implemented by libs.RelayClient.
type OrderRelay interface {
	Submit(ctx context.Context, payload models.OrderPayload) error
}

// BookingState is the slice of the booking service the gate touches when a
// date fills between calendar render and submission.
type BookingState interface {
	RefreshAvailability(ctx context.Context)
	ClearSelection(sessionID string)
}

// CheckoutPolicy carries the gate's configured rules.
type CheckoutPolicy struct {
	OrderLimitPerDay int
	DeliveryZips     []string
	Fees             FeeSchedule
}

// CheckoutService is the order submission gate: it validates, re-checks
// capacity, reserves the slot, assembles the payload, clears the cart and
// hands off to the relay, short-circuiting on the first failure.
type CheckoutService struct {
	carts        CartStore
	availability AvailabilityCounter
	relay        OrderRelay
	booking      BookingState
	policy       CheckoutPolicy

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(carts CartStore, availability AvailabilityCounter, relay OrderRelay, booking BookingState, policy CheckoutPolicy) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		availability: availability,
		relay:        relay,
		booking:      booking,
		policy:       policy,
		inFlight:     map[string]struct{}{},
	}
}

// Submit runs the gate sequence. The BookingSelection is passed in by value;
// the gate never reads it from ambient state. No failure before the cart
// clear ever loses cart contents.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, req models.CheckoutRequest, sel models.BookingSelection) (models.OrderReceipt, error) {
	if req.IsDelivery() {
		if strings.TrimSpace(req.Address) == "" {
			return models.OrderReceipt{}, ErrAddressRequired
		}
		zip := strings.TrimSpace(req.Zip)
		if zip == "" {
			return models.OrderReceipt{}, ErrZipRequired
		}
		if !s.zipAllowed(zip) {
			return models.OrderReceipt{}, ErrZipNotAllowed
		}
	}

	if !sel.Complete() {
		return models.OrderReceipt{}, ErrBookingIncomplete
	}

	// One in-flight submission per session; the submit control stays disabled
	// until this resolves.
	if err := s.begin(sessionID); err != nil {
		return models.OrderReceipt{}, err
	}
	defer s.end(sessionID)

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return models.OrderReceipt{}, fmt.Errorf("load cart: %w", err)
	}
	if len(cart) == 0 {
		return models.OrderReceipt{}, ErrEmptyCart
	}

	// The calendar's blocked-set snapshot may be stale; this read is
	// authoritative.
	count, err := s.availability.CountFor(ctx, sel.Date)
	if err != nil {
		return models.OrderReceipt{}, fmt.Errorf("capacity re-check: %w", err)
	}
	if count >= s.policy.OrderLimitPerDay {
		s.booking.ClearSelection(sessionID)
		s.booking.RefreshAvailability(ctx)
		return models.OrderReceipt{}, ErrDateFull
	}

	// Reserve the slot before assembling the payload: a crash after this
	// point still counts toward the limit, failing safe toward under-booking.
	if _, err := s.availability.IncrementDate(ctx, sel.Date); err != nil {
		return models.OrderReceipt{}, fmt.Errorf("reserve slot: %w", err)
	}

	totals := CalculateTotals(cart.Subtotal(), req.IsDelivery(), s.policy.Fees)
	payload := s.buildPayload(cart, totals, req, sel)

	// The guaranteed-success path is the only one that clears the cart.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("Failed to clear cart for session %s after booking: %v", sessionID, err)
	}
	s.booking.ClearSelection(sessionID)

	if err := s.relay.Submit(ctx, payload); err != nil {
		log.Printf("Relay submission failed for order %s: %v", payload.OrderNumber, err)
		return models.OrderReceipt{}, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	return models.OrderReceipt{
		OrderNumber:    payload.OrderNumber,
		Totals:         totals.View(),
		DeliveryOption: payload.DeliveryOption,
		PickupTime:     payload.PickupTime,
	}, nil
}

func (s *CheckoutService) zipAllowed(zip string) bool {
	for _, allowed := range s.policy.DeliveryZips {
		if zip == allowed {
			return true
		}
	}
	return false
}

func (s *CheckoutService) begin(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return ErrSubmissionInFlight
	}
	s.inFlight[sessionID] = struct{}{}
	return nil
}

func (s *CheckoutService) end(sessionID string) {
	s.mu.Lock()
	delete(s.inFlight, sessionID)
	s.mu.Unlock()
}

func (s *CheckoutService) buildPayload(cart models.Cart, totals models.Totals, req models.CheckoutRequest, sel models.BookingSelection) models.OrderPayload {
	var items strings.Builder
	for _, item := range cart {
		fmt.Fprintf(&items, "Item: %s (%s) (Qty: %d) - $%s\n",
			item.Name, item.TraySize, item.Quantity, item.LineTotal().StringFixed(2))
	}

	option := "Pickup"
	address := ""
	if req.IsDelivery() {
		option = "Delivery"
		address = fmt.Sprintf("%s, %s", strings.TrimSpace(req.Address), strings.TrimSpace(req.Zip))
	}

	return models.OrderPayload{
		OrderNumber:    "ORD-" + uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Items:          items.String(),
		Subtotal:       totals.Subtotal.StringFixed(2),
		Fees:           totals.FeesTotal().StringFixed(2),
		GrandTotal:     totals.GrandTotal.StringFixed(2),
		DeliveryOption: option,
		Address:        address,
		PickupTime:     sel.Date + " " + sel.Time,
	}
}
