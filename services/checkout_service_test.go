package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"catering-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

type fakeCounter struct {
	mu       sync.Mutex
	counts   map[string]int
	countErr error
	incErr   error
	incCalls int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int{}}
}

func (f *fakeCounter) CountFor(_ context.Context, date string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[date], nil
}

func (f *fakeCounter) IncrementDate(_ context.Context, date string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incErr != nil {
		return 0, f.incErr
	}
	f.incCalls++
	f.counts[date]++
	return f.counts[date], nil
}

type fakeRelay struct {
	mu       sync.Mutex
	payloads []models.OrderPayload
	err      error
	block    chan struct{}
}

func (f *fakeRelay) Submit(_ context.Context, payload models.OrderPayload) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeBookingState struct {
	mu        sync.Mutex
	refreshes int
	cleared   []string
}

func (f *fakeBookingState) RefreshAvailability(context.Context) {
	f.mu.Lock()
	f.refreshes++
	f.mu.Unlock()
}

func (f *fakeBookingState) ClearSelection(sessionID string) {
	f.mu.Lock()
	f.cleared = append(f.cleared, sessionID)
	f.mu.Unlock()
}

type gateFixture struct {
	store   *fakeCartStore
	counter *fakeCounter
	relay   *fakeRelay
	booking *fakeBookingState
	gate    *CheckoutService
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	f := &gateFixture{
		store:   newFakeCartStore(),
		counter: newFakeCounter(),
		relay:   &fakeRelay{},
		booking: &fakeBookingState{},
	}
	f.gate = NewCheckoutService(f.store, f.counter, f.relay, f.booking, CheckoutPolicy{
		OrderLimitPerDay: 2,
		DeliveryZips:     []string{"07030", "07302"},
		Fees:             testFees(t),
	})

	// Seed the session cart with 3 x $6.33.
	cart := models.Cart{testItem(t, "jollof-small", "6.33")}
	cart[0].Quantity = 3
	require.NoError(t, f.store.Save(t.Context(), "s1", cart))

	return f
}

func pickupRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		Name:           "Ada Obi",
		Email:          "ada@example.com",
		Phone:          "555-0100",
		Consent:        true,
		DeliveryOption: models.OptionPickup,
	}
}

func deliveryRequest(zip string) models.CheckoutRequest {
	req := pickupRequest()
	req.DeliveryOption = models.OptionDelivery
	req.Address = "12 Grove St"
	req.Zip = zip
	return req
}

func completeSelection() models.BookingSelection {
	return models.BookingSelection{Date: "2025-12-11", Time: "1:00 PM"}
}

func (f *gateFixture) cartLen(t *testing.T) int {
	t.Helper()
	cart, err := f.store.Load(t.Context(), "s1")
	require.NoError(t, err)
	return len(cart)
}

func TestSubmitPickupSuccess(t *testing.T) {
	f := newGateFixture(t)

	receipt, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	require.NoError(t, err)

	assert.Equal(t, "18.99", receipt.Totals.Subtotal)
	assert.Equal(t, "20.98", receipt.Totals.GrandTotal)
	assert.Equal(t, "Pickup", receipt.DeliveryOption)
	assert.Equal(t, "2025-12-11 1:00 PM", receipt.PickupTime)

	// Slot reserved exactly once, cart cleared exactly once.
	assert.Equal(t, 1, f.counter.incCalls)
	assert.Equal(t, 1, f.counter.counts["2025-12-11"])
	assert.Equal(t, 1, f.store.clears)
	assert.Equal(t, 0, f.cartLen(t))
	assert.Equal(t, []string{"s1"}, f.booking.cleared)

	require.Len(t, f.relay.payloads, 1)
	payload := f.relay.payloads[0]
	assert.True(t, strings.HasPrefix(payload.OrderNumber, "ORD-"))
	assert.Contains(t, payload.Items, "Item: Jollof Rice (Small Tray) (Qty: 3) - $18.99")
	assert.Equal(t, "18.99", payload.Subtotal)
	assert.Equal(t, "1.99", payload.Fees)
	assert.Equal(t, "20.98", payload.GrandTotal)
	assert.Empty(t, payload.Address)
}

func TestSubmitDeliverySuccess(t *testing.T) {
	f := newGateFixture(t)

	receipt, err := f.gate.Submit(t.Context(), "s1", deliveryRequest("07030"), completeSelection())
	require.NoError(t, err)

	assert.Equal(t, "25.97", receipt.Totals.GrandTotal)
	assert.Equal(t, "Delivery", receipt.DeliveryOption)

	require.Len(t, f.relay.payloads, 1)
	assert.Equal(t, "12 Grove St, 07030", f.relay.payloads[0].Address)
	assert.Equal(t, "6.98", f.relay.payloads[0].Fees)
}

func TestSubmitDeliveryValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CheckoutRequest)
		wantErr error
	}{
		{
			name:    "zip outside allowed set",
			mutate:  func(r *models.CheckoutRequest) { r.Zip = "10001" },
			wantErr: ErrZipNotAllowed,
		},
		{
			name:    "zip missing",
			mutate:  func(r *models.CheckoutRequest) { r.Zip = "  " },
			wantErr: ErrZipRequired,
		},
		{
			name:    "address missing",
			mutate:  func(r *models.CheckoutRequest) { r.Address = "" },
			wantErr: ErrAddressRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t)
			req := deliveryRequest("07030")
			tt.mutate(&req)

			_, err := f.gate.Submit(t.Context(), "s1", req, completeSelection())
			assert.ErrorIs(t, err, tt.wantErr)

			// Aborted paths never touch the cart, the counter, or the relay.
			assert.Equal(t, 3, f.cartLen(t))
			assert.Equal(t, 0, f.store.clears)
			assert.Equal(t, 0, f.counter.incCalls)
			assert.Empty(t, f.relay.payloads)
		})
	}
}

func TestSubmitRequiresCompleteBooking(t *testing.T) {
	f := newGateFixture(t)

	for _, sel := range []models.BookingSelection{
		{},
		{Date: "2025-12-11"},
		{Time: "1:00 PM"},
	} {
		_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), sel)
		assert.ErrorIs(t, err, ErrBookingIncomplete)
	}

	assert.Equal(t, 3, f.cartLen(t))
	assert.Equal(t, 0, f.counter.incCalls)
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newGateFixture(t)
	require.NoError(t, f.store.Clear(t.Context(), "s1"))
	f.store.clears = 0

	_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, f.counter.incCalls)
}

func TestSubmitDateJustFilled(t *testing.T) {
	f := newGateFixture(t)
	f.counter.counts["2025-12-11"] = 2

	_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	assert.ErrorIs(t, err, ErrDateFull)

	// The conflict path refreshes availability, drops the stale selection,
	// keeps the cart and never increments the counter.
	assert.Equal(t, 1, f.booking.refreshes)
	assert.Equal(t, []string{"s1"}, f.booking.cleared)
	assert.Equal(t, 3, f.cartLen(t))
	assert.Equal(t, 0, f.counter.incCalls)
	assert.Equal(t, 2, f.counter.counts["2025-12-11"])
	assert.Empty(t, f.relay.payloads)

	// The gate is released: a retry with a fresh selection goes through.
	_, err = f.gate.Submit(t.Context(), "s1", pickupRequest(),
		models.BookingSelection{Date: "2025-12-12", Time: "1:00 PM"})
	require.NoError(t, err)
}

func TestSubmitCapacityCheckError(t *testing.T) {
	f := newGateFixture(t)
	f.counter.countErr = errors.New("store down")

	_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	require.Error(t, err)

	assert.Equal(t, 3, f.cartLen(t))
	assert.Equal(t, 0, f.counter.incCalls)
	assert.Empty(t, f.relay.payloads)
}

func TestSubmitRelayFailureReported(t *testing.T) {
	f := newGateFixture(t)
	f.relay.err = errors.New("relay unreachable")

	_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	assert.ErrorIs(t, err, ErrRelayFailed)

	// The slot stays reserved and the failure is surfaced, not swallowed.
	assert.Equal(t, 1, f.counter.incCalls)
}

func TestOrderNumbersUnique(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	require.NoError(t, err)

	// Re-seed and submit again immediately; two orders landing in the same
	// second must still get distinct numbers.
	cart := models.Cart{testItem(t, "jollof-small", "6.33")}
	cart[0].Quantity = 1
	require.NoError(t, f.store.Save(t.Context(), "s1", cart))

	_, err = f.gate.Submit(t.Context(), "s1", pickupRequest(),
		models.BookingSelection{Date: "2025-12-12", Time: "1:00 PM"})
	require.NoError(t, err)

	require.Len(t, f.relay.payloads, 2)
	assert.True(t, strings.HasPrefix(f.relay.payloads[0].OrderNumber, "ORD-"))
	assert.True(t, strings.HasPrefix(f.relay.payloads[1].OrderNumber, "ORD-"))
	assert.NotEqual(t, f.relay.payloads[0].OrderNumber, f.relay.payloads[1].OrderNumber)
}

func TestSubmitSerializedPerSession(t *testing.T) {
	f := newGateFixture(t)
	f.relay.block = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.gate.Submit(context.Background(), "s1", pickupRequest(), completeSelection())
		firstDone <- err
	}()

	// Wait until the first submission is inside the relay call.
	require.Eventually(t, func() bool {
		f.gate.mu.Lock()
		defer f.gate.mu.Unlock()
		_, busy := f.gate.inFlight["s1"]
		return busy
	}, testWait, testTick)

	_, err := f.gate.Submit(t.Context(), "s1", pickupRequest(), completeSelection())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(f.relay.block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, f.counter.incCalls)
}
