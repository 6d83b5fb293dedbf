package marketdata

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Bar holds one trading day of price data. Close is always set; the range
// fields are only meaningful when HasRange is true (the source file carried
// full OHLC columns for that line).
type Bar struct {
	Open     float64
	High     float64
	Low      float64
	Close    float64
	HasRange bool
}

// History is an ordered, chronological series of daily bars.
type History struct {
	Bars []Bar
}

// ReadPrices loads a price history from a comma-delimited text file.
//
// The format is deliberately loose: for each line the last field is taken as
// the closing price, and lines whose last field is not numeric (headers,
// blanks) are skipped. Lines with at least four numeric fields are treated as
// open,high,low,close so the range-based volatility estimators can be used.
// An unreadable file is an error; a readable file with no usable lines just
// yields an empty history.
func ReadPrices(path string) (History, error) {
	f, err := os.Open(path)
	if err != nil {
		return History{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var h History
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		bar, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		h.Bars = append(h.Bars, bar)
	}
	if err := scanner.Err(); err != nil {
		return History{}, fmt.Errorf("read %s: %w", path, err)
	}
	return h, nil
}

func parseLine(line string) (Bar, bool) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	last := strings.TrimSpace(fields[len(fields)-1])
	if last == "" {
		return Bar{}, false
	}
	closePrice, err := strconv.ParseFloat(last, 64)
	if err != nil || closePrice <= 0 {
		return Bar{}, false
	}

	bar := Bar{Close: closePrice}
	if len(fields) >= 4 {
		o, errO := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		hi, errH := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		lo, errL := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if errO == nil && errH == nil && errL == nil && o > 0 && hi > 0 && lo > 0 {
			bar.Open = o
			bar.High = hi
			bar.Low = lo
			bar.HasRange = true
		}
	}
	return bar, true
}

// Closes extracts the closing price series in chronological order.
func (h History) Closes() []float64 {
	prices := make([]float64, len(h.Bars))
	for i, bar := range h.Bars {
		prices[i] = bar.Close
	}
	return prices
}

// Last returns the most recent closing price, the natural spot price for
// pricing. ok is false for an empty history.
func (h History) Last() (price float64, ok bool) {
	if len(h.Bars) == 0 {
		return 0, false
	}
	return h.Bars[len(h.Bars)-1].Close, true
}

// Len reports the number of bars in the history.
func (h History) Len() int {
	return len(h.Bars)
}
