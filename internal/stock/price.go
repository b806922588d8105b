// Package stock estimates lumber purchasing: a linear price-per-foot model
// fitted from observed prices, and a 1D cutting-stock optimizer that
// chooses which stock lengths to buy and how to cut them.
package stock

import "fmt"

// PricePoint is one observed purchase price for a stock length.
type PricePoint struct {
	LengthFt float64 `json:"length_ft"`
	Price    float64 `json:"price"`
}

// PriceModel is a linear fit: Price = Slope*LengthFt + Intercept.
type PriceModel struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// FitPriceModel fits the model by ordinary least squares. At least two
// points with distinct lengths are required.
func FitPriceModel(points []PricePoint) (PriceModel, error) {
	if len(points) < 2 {
		return PriceModel{}, fmt.Errorf("need at least 2 price points, have %d", len(points))
	}

	var sumX, sumY, sumXX, sumXY float64
	for _, p := range points {
		sumX += p.LengthFt
		sumY += p.Price
		sumXX += p.LengthFt * p.LengthFt
		sumXY += p.LengthFt * p.Price
	}
	n := float64(len(points))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return PriceModel{}, fmt.Errorf("all price points share the same length")
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return PriceModel{Slope: slope, Intercept: intercept}, nil
}

// Estimate returns the modeled price for a stock length in feet.
func (m PriceModel) Estimate(lengthFt float64) float64 {
	return m.Slope*lengthFt + m.Intercept
}
