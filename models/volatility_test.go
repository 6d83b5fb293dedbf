package models

import (
	"math"
	"testing"

	"github.com/quantforge/mcpricer/marketdata"
)

func TestEstimateVolatilityFallback(t *testing.T) {
	cases := [][]float64{
		nil,
		{},
		{100},
		{100, 110}, // one log return cannot estimate dispersion
	}
	for _, prices := range cases {
		if got := EstimateVolatility(prices); got != FallbackVolatility {
			t.Errorf("EstimateVolatility(%v) = %g, want fallback %g", prices, got, FallbackVolatility)
		}
	}
}

func TestEstimateVolatilityKnownSeries(t *testing.T) {
	// Returns ln(1.1) and -ln(1.1), mean 0, so the sample stddev is
	// sqrt(2*ln(1.1)^2 / 1) and the annualized value follows directly.
	prices := []float64{100, 110, 100}
	want := math.Sqrt(2*math.Pow(math.Log(1.1), 2)) * math.Sqrt(252)

	got := EstimateVolatility(prices)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("EstimateVolatility = %g, want %g", got, want)
	}
}

func TestEstimateVolatilityConstantSeries(t *testing.T) {
	prices := []float64{50, 50, 50, 50, 50}
	if got := EstimateVolatility(prices); got != 0 {
		t.Errorf("constant series should have zero volatility, got %g", got)
	}
}

func TestEstimateVolatilityNonNegative(t *testing.T) {
	prices := []float64{100, 101.5, 99.2, 103.7, 102.1, 98.8, 104.3}
	got := EstimateVolatility(prices)
	if got < 0 || math.IsNaN(got) {
		t.Errorf("expected non-negative volatility, got %g", got)
	}
}

func ohlcHistory() marketdata.History {
	return marketdata.History{Bars: []marketdata.Bar{
		{Open: 100, High: 103, Low: 98, Close: 101, HasRange: true},
		{Open: 101, High: 105, Low: 100, Close: 104, HasRange: true},
		{Open: 104, High: 106, Low: 101, Close: 102, HasRange: true},
		{Open: 102, High: 104, Low: 99, Close: 100, HasRange: true},
	}}
}

func TestParkinsonVolatility(t *testing.T) {
	got := EstimateParkinsonVolatility(ohlcHistory())
	if got <= 0 || math.IsNaN(got) {
		t.Fatalf("expected positive Parkinson volatility, got %g", got)
	}
	if got == FallbackVolatility {
		t.Error("OHLC history should not trigger the fallback")
	}
}

func TestGarmanKlassVolatility(t *testing.T) {
	got := EstimateGarmanKlassVolatility(ohlcHistory())
	if got <= 0 || math.IsNaN(got) {
		t.Fatalf("expected positive Garman-Klass volatility, got %g", got)
	}
	if got == FallbackVolatility {
		t.Error("OHLC history should not trigger the fallback")
	}
}

func TestRangeEstimatorsFallBackWithoutRangeData(t *testing.T) {
	closeOnly := marketdata.History{Bars: []marketdata.Bar{
		{Close: 100},
		{Close: 102},
		{Close: 101},
	}}
	short := marketdata.History{Bars: []marketdata.Bar{
		{Open: 100, High: 103, Low: 98, Close: 101, HasRange: true},
	}}

	for name, h := range map[string]marketdata.History{"close-only": closeOnly, "short": short} {
		if got := EstimateParkinsonVolatility(h); got != FallbackVolatility {
			t.Errorf("Parkinson on %s history = %g, want fallback", name, got)
		}
		if got := EstimateGarmanKlassVolatility(h); got != FallbackVolatility {
			t.Errorf("Garman-Klass on %s history = %g, want fallback", name, got)
		}
	}
}
