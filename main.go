package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"

	"github.com/quantforge/mcpricer/marketdata"
	"github.com/quantforge/mcpricer/models"
	"github.com/quantforge/mcpricer/probability"
)

const confidenceZ = 1.96 // 95% confidence interval

type runRecord struct {
	Parameters    models.SimulationParameters `json:"parameters"`
	Result        models.SimulationResult     `json:"result"`
	Estimator     string                      `json:"estimator"`
	HistoryPoints int                         `json:"history_points"`
	ElapsedSec    float64                     `json:"elapsed_seconds"`
}

func main() {
	godotenv.Load()

	csvFile := envString("MC_CSV_FILE", "market_data.csv")
	if len(os.Args) > 1 {
		csvFile = os.Args[1]
	}
	paths := envInt64("MC_PATHS", 100_000_000)
	workers := int(envInt64("MC_WORKERS", 0))
	rate := envFloat("MC_RISK_FREE_RATE", 0.05)
	maturity := envFloat("MC_MATURITY", 1.0)
	estimator := envString("MC_VOL_ESTIMATOR", "close")
	seed := envUint64("MC_SEED", 0)
	outFile := envString("MC_OUTPUT_JSON", "result.json")

	fmt.Println("============================================")
	fmt.Println("        MONTE CARLO OPTION PRICER           ")
	fmt.Println("============================================")
	if cores, err := cpu.Counts(true); err == nil {
		fmt.Printf("[SYSTEM]   CPU Cores: %d\n", cores)
	}
	fmt.Printf("[SYSTEM]   Workers:   %s\n", workerLabel(workers))

	spot, strike, volatility := 100.0, 100.0, models.FallbackVolatility

	history, err := marketdata.ReadPrices(csvFile)
	if err != nil {
		log.Printf("[WARNING] %v, using dummy parameters", err)
	} else if last, ok := history.Last(); ok {
		spot = last
		strike = last // at-the-money
		volatility = estimateVolatility(estimator, history)
		fmt.Printf("[DATA]     Source: %s (%d points)\n", csvFile, history.Len())
		fmt.Printf("[DATA]     Historical Volatility (%s): %.2f%%\n", estimator, volatility*100)
	} else {
		log.Printf("[WARNING] no usable prices in %s, using dummy parameters", csvFile)
	}

	params := models.SimulationParameters{
		Spot:       spot,
		Strike:     strike,
		Rate:       rate,
		Volatility: volatility,
		Maturity:   maturity,
		Paths:      paths,
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	fmt.Printf("[RUN]      Simulating %.2e paths...\n", float64(paths))

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(paths,
		mpb.PrependDecorators(
			decor.Name("Progress"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	start := time.Now()
	result, err := probability.PriceOptionWithConfig(params, probability.Config{
		Workers: workers,
		Seed:    seed,
		Bar:     bar,
	})
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	p.Wait()
	elapsed := time.Since(start)

	report(params, result, elapsed)

	record := runRecord{
		Parameters:    params,
		Result:        result,
		Estimator:     estimator,
		HistoryPoints: history.Len(),
		ElapsedSec:    elapsed.Seconds(),
	}
	jrecord, err := json.Marshal(record)
	if err != nil {
		log.Fatalf("[ERROR] marshalling result: %v", err)
	}
	if err := ioutil.WriteFile(outFile, jrecord, 0644); err != nil {
		log.Fatalf("[ERROR] writing %s: %v", outFile, err)
	}
	fmt.Printf("Result written to %s\n", outFile)
}

func report(params models.SimulationParameters, result models.SimulationResult, elapsed time.Duration) {
	lo, hi := result.ConfidenceInterval(confidenceZ)
	reference := models.BlackScholesCall(params.Spot, params.Strike, params.Rate, params.Volatility, params.Maturity)

	fmt.Println("--------------------------------------------")
	fmt.Println("Simulation Parameters:")
	fmt.Printf("  > Asset Start Price (S0): %.4f\n", params.Spot)
	fmt.Printf("  > Option Strike Price (K): %.4f\n", params.Strike)
	fmt.Printf("  > Time to Maturity (T):   %.4f Years\n", params.Maturity)
	fmt.Printf("  > Risk-Free Rate (r):     %.4f %%\n", params.Rate*100)
	fmt.Println("--------------------------------------------")
	fmt.Println("Asset Projection (Drift Check):")
	fmt.Printf("  > Avg Final Price (ST):   %.4f\n", result.AvgTerminalPrice)
	fmt.Println("--------------------------------------------")
	fmt.Println("Option Valuation (95% Confidence):")
	fmt.Printf("  > FAIR VALUE:             %.4f\n", result.FairValue)
	fmt.Printf("  > Standard Error:         %.4f\n", result.StdError)
	fmt.Printf("  > Conf. Interval:         [%.4f, %.4f]\n", lo, hi)
	fmt.Printf("  > Black-Scholes Ref:      %.4f\n", reference)
	fmt.Println("--------------------------------------------")
	fmt.Println("Performance Metrics:")
	fmt.Printf("  > Time:                   %.5f sec\n", elapsed.Seconds())
	fmt.Printf("  > Throughput:             %.2f M sims/sec\n", float64(params.Paths)/elapsed.Seconds()/1e6)
	fmt.Println("============================================")
}

func estimateVolatility(estimator string, history marketdata.History) float64 {
	switch estimator {
	case "parkinson":
		return models.EstimateParkinsonVolatility(history)
	case "garmanklass":
		return models.EstimateGarmanKlassVolatility(history)
	case "close":
		return models.EstimateVolatility(history.Closes())
	default:
		log.Printf("[WARNING] unknown estimator %q, using close-to-close", estimator)
		return models.EstimateVolatility(history.Closes())
	}
}

func workerLabel(workers int) string {
	if workers <= 0 {
		return "auto"
	}
	return strconv.Itoa(workers)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("[ERROR] %s=%q is not a number", key, v)
	}
	return f
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("[ERROR] %s=%q is not an integer", key, v)
	}
	return n
}

func envUint64(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Fatalf("[ERROR] %s=%q is not an unsigned integer", key, v)
	}
	return n
}
