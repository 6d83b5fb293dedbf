package models

import "math"

// BlackScholesCall returns the closed-form Black-Scholes price of a European
// call. Used as the analytical reference value the Monte Carlo estimate is
// reported against; with sigma=0 it degenerates to the discounted forward
// payoff max(S*e^(rT) - K, 0)*e^(-rT).
func BlackScholesCall(s, k, r, sigma, t float64) float64 {
	if sigma == 0 {
		return math.Max(s*math.Exp(r*t)-k, 0) * math.Exp(-r*t)
	}

	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	d2 := d1 - sigma*math.Sqrt(t)

	return s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
