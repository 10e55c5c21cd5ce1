package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFees(t *testing.T) FeeSchedule {
	t.Helper()

	processing, err := decimal.NewFromString("1.99")
	require.NoError(t, err)
	delivery, err := decimal.NewFromString("4.99")
	require.NoError(t, err)

	return FeeSchedule{Processing: processing, Delivery: delivery}
}

func TestCalculateTotals(t *testing.T) {
	fees := testFees(t)

	tests := []struct {
		name          string
		subtotal      string
		delivery      bool
		wantDelivery  string
		wantGrand     string
		wantFeesTotal string
	}{
		{
			name:          "pickup always pays the processing fee",
			subtotal:      "18.99",
			delivery:      false,
			wantDelivery:  "0.00",
			wantGrand:     "20.98",
			wantFeesTotal: "1.99",
		},
		{
			name:          "delivery adds the delivery fee",
			subtotal:      "18.99",
			delivery:      true,
			wantDelivery:  "4.99",
			wantGrand:     "25.97",
			wantFeesTotal: "6.98",
		},
		{
			name:          "empty cart still carries fees",
			subtotal:      "0",
			delivery:      false,
			wantDelivery:  "0.00",
			wantGrand:     "1.99",
			wantFeesTotal: "1.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, err := decimal.NewFromString(tt.subtotal)
			require.NoError(t, err)

			totals := CalculateTotals(subtotal, tt.delivery, fees)

			assert.Equal(t, "1.99", totals.ProcessingFee.StringFixed(2))
			assert.Equal(t, tt.wantDelivery, totals.DeliveryFee.StringFixed(2))
			assert.Equal(t, tt.wantFeesTotal, totals.FeesTotal().StringFixed(2))
			assert.Equal(t, tt.wantGrand, totals.GrandTotal.StringFixed(2))
		})
	}
}

func TestCalculateTotalsKeepsPrecision(t *testing.T) {
	fees := testFees(t)

	// 3 x 6.33 must come out as exactly 18.99, not a float drift.
	price, err := decimal.NewFromString("6.33")
	require.NoError(t, err)
	subtotal := price.Mul(decimal.NewFromInt(3))

	totals := CalculateTotals(subtotal, false, fees)
	assert.Equal(t, "18.99", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "20.98", totals.GrandTotal.StringFixed(2))
}
