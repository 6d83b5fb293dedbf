package models

import (
	"math"

	"github.com/quantforge/mcpricer/marketdata"
)

// EstimateGarmanKlassVolatility computes annualized volatility from full
// OHLC bars, combining the high/low range term with an open-to-close
// correction. Same data requirements and fallback behavior as the Parkinson
// estimator.
func EstimateGarmanKlassVolatility(h marketdata.History) float64 {
	highs, lows, opens, closes, ok := rangeSeries(h)
	if !ok {
		return FallbackVolatility
	}

	n := len(highs)
	sum := 0.0
	for i := 0; i < n; i++ {
		hl := math.Log(highs[i] / lows[i])
		co := math.Log(closes[i] / opens[i])
		sum += 0.5*hl*hl - (2*math.Log(2)-1)*co*co
	}

	variance := sum / float64(n)
	if variance < 0 {
		return FallbackVolatility
	}
	return math.Sqrt(variance * tradingDaysPerYear)
}
