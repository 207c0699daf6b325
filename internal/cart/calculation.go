package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Fallback pricing constants, applied whenever the pricing provider cannot
// produce a well-formed success payload.
const (
	stateTaxRate   = 0.08
	localTaxRate   = 0.05
	baseFee        = 2.99
	distanceFee    = 1.50
	serviceFee     = 1.99
	platformFee    = 1.49
	smallOrderFee  = 2.99
	smallOrderMin  = 15.0
	staticDelivery = "25-35 min"
)

// CalculationRequest is the payload sent to the pricing provider.
type CalculationRequest struct {
	Subtotal        float64             `json:"subtotal"`
	DeliveryAddress *CalculationAddress `json:"deliveryAddress,omitempty"`
	RestaurantID    string              `json:"restaurantId,omitempty"`
	AddressID       string              `json:"addressId,omitempty"`
}

type CalculationAddress struct {
	Street  string  `json:"street"`
	City    string  `json:"city"`
	State   string  `json:"state,omitempty"`
	ZipCode string  `json:"zipCode,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

type TaxDetail struct {
	Amount    float64      `json:"amount"`
	Rate      float64      `json:"rate"` // percent
	Breakdown TaxBreakdown `json:"breakdown"`
}

type TaxBreakdown struct {
	StateTax float64 `json:"stateTax"`
	LocalTax float64 `json:"localTax"`
}

type DeliveryFeeDetail struct {
	Amount      float64 `json:"amount"`
	BaseFee     float64 `json:"baseFee"`
	DistanceFee float64 `json:"distanceFee"`
	ServiceFee  float64 `json:"serviceFee"`
}

type FeeDetail struct {
	PlatformFee   float64 `json:"platformFee"`
	SmallOrderFee float64 `json:"smallOrderFee,omitempty"`
}

// Calculation is the full price breakdown for a cart. It is replaced
// wholesale on every recalculation, never mutated in place.
type Calculation struct {
	Subtotal              float64           `json:"subtotal"`
	Tax                   TaxDetail         `json:"tax"`
	DeliveryFee           DeliveryFeeDetail `json:"deliveryFee"`
	Fees                  FeeDetail         `json:"fees"`
	Total                 float64           `json:"total"`
	EstimatedDeliveryTime string            `json:"estimatedDeliveryTime"`
}

type calculationEnvelope struct {
	Success bool         `json:"success"`
	Data    *Calculation `json:"data"`
	Message string       `json:"message,omitempty"`
}

// Calculator prices a cart through the external pricing endpoint, falling
// back to the local formula on any transport or shape failure. Both paths
// produce the same result shape, so callers never branch on which one ran.
type Calculator struct {
	baseURL string
	client  *http.Client
}

func NewCalculator(baseURL string, timeout time.Duration) *Calculator {
	return &Calculator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Calculate returns the breakdown for the request's subtotal, or nil when
// there is nothing to calculate (subtotal <= 0). It never returns an error:
// provider failures degrade to the deterministic fallback formula.
func (c *Calculator) Calculate(ctx context.Context, req CalculationRequest) *Calculation {
	if req.Subtotal <= 0 {
		return nil
	}

	if result, err := c.fromProvider(ctx, req); err == nil {
		return result
	} else {
		log.Println("[PRICING] [WARN] provider calculation failed, using fallback:", err)
	}

	return fallbackCalculation(req.Subtotal)
}

func (c *Calculator) fromProvider(ctx context.Context, req CalculationRequest) (*Calculation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/calculate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &providerError{status: resp.StatusCode}
	}

	var envelope calculationEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if !envelope.Success || envelope.Data == nil {
		return nil, &providerError{status: resp.StatusCode, unsuccessful: true}
	}

	return envelope.Data, nil
}

func fallbackCalculation(subtotal float64) *Calculation {
	stateTax := subtotal * stateTaxRate
	localTax := subtotal * localTaxRate
	totalTax := stateTax + localTax

	totalDeliveryFee := baseFee + distanceFee + serviceFee

	fees := FeeDetail{PlatformFee: platformFee}
	if subtotal < smallOrderMin {
		fees.SmallOrderFee = smallOrderFee
	}

	total := subtotal + totalTax + totalDeliveryFee + fees.PlatformFee + fees.SmallOrderFee

	return &Calculation{
		Subtotal: subtotal,
		Tax: TaxDetail{
			Amount: totalTax,
			Rate:   (stateTaxRate + localTaxRate) * 100,
			Breakdown: TaxBreakdown{
				StateTax: stateTax,
				LocalTax: localTax,
			},
		},
		DeliveryFee: DeliveryFeeDetail{
			Amount:      totalDeliveryFee,
			BaseFee:     baseFee,
			DistanceFee: distanceFee,
			ServiceFee:  serviceFee,
		},
		Fees:                  fees,
		Total:                 total,
		EstimatedDeliveryTime: staticDelivery,
	}
}

type providerError struct {
	status       int
	unsuccessful bool
}

func (e *providerError) Error() string {
	if e.unsuccessful {
		return "pricing provider returned unsuccessful payload"
	}
	return "pricing provider returned unexpected status"
}
