package models

import "math"

// GBM is a geometric Brownian motion process with its per-path constants
// precomputed. Under GBM the terminal price is log-normal, so a single
// standard normal draw per path is enough; no time-stepping is needed.
type GBM struct {
	Spot     float64
	Strike   float64
	Drift    float64 // (r - sigma^2/2) * T
	VolTerm  float64 // sigma * sqrt(T)
	Discount float64 // e^(-rT)
}

// NewGBM precomputes the drift, diffusion and discount terms once, keeping
// the per-path work down to one exp call.
func NewGBM(p SimulationParameters) GBM {
	return GBM{
		Spot:     p.Spot,
		Strike:   p.Strike,
		Drift:    (p.Rate - 0.5*p.Volatility*p.Volatility) * p.Maturity,
		VolTerm:  p.Volatility * math.Sqrt(p.Maturity),
		Discount: math.Exp(-p.Rate * p.Maturity),
	}
}

// Terminal maps a standard normal draw to a simulated terminal price:
// S_T = S0 * exp(drift + volTerm*z).
func (g GBM) Terminal(z float64) float64 {
	return g.Spot * math.Exp(g.Drift+g.VolTerm*z)
}

// Payoff is the European call payoff max(S_T - K, 0).
func (g GBM) Payoff(terminal float64) float64 {
	return math.Max(terminal-g.Strike, 0)
}
