package models

import (
	"math"

	"github.com/quantforge/mcpricer/marketdata"
)

// EstimateParkinsonVolatility computes annualized volatility from daily
// high/low ranges. The range estimator is more efficient than close-to-close
// when intraday extremes are available, but it needs them: histories without
// range data (close-only CSV rows) or with fewer than 2 bars fall back to
// FallbackVolatility.
func EstimateParkinsonVolatility(h marketdata.History) float64 {
	highs, lows, _, _, ok := rangeSeries(h)
	if !ok {
		return FallbackVolatility
	}

	n := len(highs)
	sum := 0.0
	for i := 0; i < n; i++ {
		logRatio := math.Log(highs[i] / lows[i])
		sum += logRatio * logRatio
	}

	daily := math.Sqrt(sum / (4 * float64(n) * math.Log(2)))
	return daily * math.Sqrt(tradingDaysPerYear)
}

// rangeSeries extracts the OHLC columns from a history, rejecting histories
// where any bar lacks range data or has fewer than 2 bars.
func rangeSeries(h marketdata.History) (highs, lows, opens, closes []float64, ok bool) {
	if h.Len() < 2 {
		return nil, nil, nil, nil, false
	}

	n := h.Len()
	highs = make([]float64, n)
	lows = make([]float64, n)
	opens = make([]float64, n)
	closes = make([]float64, n)
	for i, bar := range h.Bars {
		if !bar.HasRange || bar.High <= 0 || bar.Low <= 0 || bar.Open <= 0 {
			return nil, nil, nil, nil, false
		}
		highs[i] = bar.High
		lows[i] = bar.Low
		opens[i] = bar.Open
		closes[i] = bar.Close
	}
	return highs, lows, opens, closes, true
}
