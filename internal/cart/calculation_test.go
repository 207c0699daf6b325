package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackBelowSmallOrderThreshold(t *testing.T) {
	calc := NewCalculator("http://127.0.0.1:0", 50*time.Millisecond)

	result := calc.Calculate(context.Background(), CalculationRequest{Subtotal: 12.00})
	require.NotNil(t, result)

	assert.InDelta(t, 0.96, result.Tax.Breakdown.StateTax, 1e-9)
	assert.InDelta(t, 0.60, result.Tax.Breakdown.LocalTax, 1e-9)
	assert.InDelta(t, 1.56, result.Tax.Amount, 1e-9)
	assert.InDelta(t, 13.0, result.Tax.Rate, 1e-9)
	assert.InDelta(t, 6.48, result.DeliveryFee.Amount, 1e-9)
	assert.InDelta(t, 1.49, result.Fees.PlatformFee, 1e-9)
	assert.InDelta(t, 2.99, result.Fees.SmallOrderFee, 1e-9)
	assert.InDelta(t, 24.52, result.Total, 1e-9)
	assert.Equal(t, "25-35 min", result.EstimatedDeliveryTime)
}

func TestFallbackAboveSmallOrderThreshold(t *testing.T) {
	calc := NewCalculator("http://127.0.0.1:0", 50*time.Millisecond)

	result := calc.Calculate(context.Background(), CalculationRequest{Subtotal: 20.00})
	require.NotNil(t, result)

	assert.Zero(t, result.Fees.SmallOrderFee)
	assert.InDelta(t, 30.57, result.Total, 1e-9)

	// The omitted fee must not serialize at all.
	body, err := json.Marshal(result.Fees)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "smallOrderFee")
}

func TestZeroSubtotalIsNothingToCalculate(t *testing.T) {
	calc := NewCalculator("http://127.0.0.1:0", 50*time.Millisecond)

	assert.Nil(t, calc.Calculate(context.Background(), CalculationRequest{Subtotal: 0}))
	assert.Nil(t, calc.Calculate(context.Background(), CalculationRequest{Subtotal: -3}))
}

func TestProviderPayloadReturnedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/calculate", r.URL.Path)

		var req CalculationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.InDelta(t, 42.00, req.Subtotal, 1e-9)

		json.NewEncoder(w).Encode(calculationEnvelope{
			Success: true,
			Data: &Calculation{
				Subtotal: 42.00,
				Tax:      TaxDetail{Amount: 5.46, Rate: 13, Breakdown: TaxBreakdown{StateTax: 3.36, LocalTax: 2.10}},
				DeliveryFee: DeliveryFeeDetail{
					Amount: 4.99, BaseFee: 2.99, DistanceFee: 1.00, ServiceFee: 1.00,
				},
				Fees:                  FeeDetail{PlatformFee: 1.49},
				Total:                 53.94,
				EstimatedDeliveryTime: "15-25 min",
			},
		})
	}))
	defer server.Close()

	calc := NewCalculator(server.URL, time.Second)
	result := calc.Calculate(context.Background(), CalculationRequest{Subtotal: 42.00})

	require.NotNil(t, result)
	assert.InDelta(t, 53.94, result.Total, 1e-9)
	assert.Equal(t, "15-25 min", result.EstimatedDeliveryTime)
}

func TestUnsuccessfulProviderPayloadFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(calculationEnvelope{Success: false, Message: "pricing offline"})
	}))
	defer server.Close()

	calc := NewCalculator(server.URL, time.Second)
	result := calc.Calculate(context.Background(), CalculationRequest{Subtotal: 20.00})

	require.NotNil(t, result)
	// Fallback shape, indistinguishable from the provider path.
	assert.InDelta(t, 30.57, result.Total, 1e-9)
	assert.Equal(t, "25-35 min", result.EstimatedDeliveryTime)
}

func TestProviderErrorStatusFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	calc := NewCalculator(server.URL, time.Second)
	result := calc.Calculate(context.Background(), CalculationRequest{Subtotal: 12.00})

	require.NotNil(t, result)
	assert.InDelta(t, 24.52, result.Total, 1e-9)
}
