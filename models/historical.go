package models

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// FallbackVolatility is the deliberate default used when the price
	// history is too short to estimate dispersion. Not an error condition.
	FallbackVolatility = 0.20

	tradingDaysPerYear = 252
)

// EstimateVolatility computes annualized close-to-close historical
// volatility: the Bessel-corrected sample standard deviation of daily log
// returns, scaled by sqrt(252).
//
// Fewer than 3 prices means fewer than 2 log returns, and a single return
// cannot estimate dispersion (the unbiased-variance denominator would be
// zero), so anything shorter falls back to FallbackVolatility.
func EstimateVolatility(prices []float64) float64 {
	if len(prices) < 3 {
		return FallbackVolatility
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}

	return stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear)
}
