package models

import (
	"fmt"
	"math"
)

// SimulationParameters is the immutable input record for a pricing run.
// Built once from estimator output and configuration, never mutated.
type SimulationParameters struct {
	Spot       float64 `json:"spot"`       // S0, current asset price
	Strike     float64 `json:"strike"`     // K
	Rate       float64 `json:"rate"`       // r, annualized risk-free rate
	Volatility float64 `json:"volatility"` // sigma, annualized
	Maturity   float64 `json:"maturity"`   // T, years
	Paths      int64   `json:"paths"`      // N, simulated terminal prices
}

// SimulationResult is the output record of a single engine invocation.
type SimulationResult struct {
	FairValue        float64 `json:"fair_value"`
	StdError         float64 `json:"std_error"`
	AvgTerminalPrice float64 `json:"avg_terminal_price"`
}

// ConfidenceInterval returns the symmetric interval around FairValue for the
// given z-score (1.96 for 95%). Interval construction is the caller's choice;
// the engine only supplies the standard error.
func (r SimulationResult) ConfidenceInterval(z float64) (lo, hi float64) {
	return r.FairValue - z*r.StdError, r.FairValue + z*r.StdError
}

// InvalidParameterError reports a precondition violation on a single
// simulation parameter. It is returned before any simulation work starts.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Param, e.Value, e.Reason)
}

// Validate checks the engine preconditions and returns an
// *InvalidParameterError naming the first offending field.
func (p SimulationParameters) Validate() error {
	checks := []struct {
		name   string
		value  float64
		bad    bool
		reason string
	}{
		{"spot", p.Spot, p.Spot <= 0 || !isFinite(p.Spot), "must be a positive finite number"},
		{"strike", p.Strike, p.Strike <= 0 || !isFinite(p.Strike), "must be a positive finite number"},
		{"rate", p.Rate, !isFinite(p.Rate), "must be finite"},
		{"volatility", p.Volatility, p.Volatility < 0 || !isFinite(p.Volatility), "must be a non-negative finite number"},
		{"maturity", p.Maturity, p.Maturity <= 0 || !isFinite(p.Maturity), "must be a positive finite number"},
		{"paths", float64(p.Paths), p.Paths <= 0, "must be a positive integer"},
	}
	for _, c := range checks {
		if c.bad {
			return &InvalidParameterError{Param: c.name, Value: c.value, Reason: c.reason}
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
