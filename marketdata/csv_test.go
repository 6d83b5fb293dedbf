package marketdata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadPricesLastFieldIsClose(t *testing.T) {
	path := writeTempCSV(t, "date,close\n2024-01-02,100.5\n2024-01-03,101.25\n2024-01-04,99.75\n")

	h, err := ReadPrices(path)
	if err != nil {
		t.Fatalf("ReadPrices failed: %v", err)
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 bars (header skipped), got %d", h.Len())
	}

	closes := h.Closes()
	want := []float64{100.5, 101.25, 99.75}
	for i, w := range want {
		if closes[i] != w {
			t.Errorf("close[%d] = %g, want %g", i, closes[i], w)
		}
	}

	last, ok := h.Last()
	if !ok || last != 99.75 {
		t.Errorf("Last() = %g, %v; want 99.75, true", last, ok)
	}
}

func TestReadPricesOHLCRows(t *testing.T) {
	path := writeTempCSV(t, "open,high,low,close\n100,103,98,101\n101,105,100,104\n")

	h, err := ReadPrices(path)
	if err != nil {
		t.Fatalf("ReadPrices failed: %v", err)
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 bars, got %d", h.Len())
	}

	bar := h.Bars[0]
	if !bar.HasRange {
		t.Fatal("expected range data on OHLC row")
	}
	if bar.Open != 100 || bar.High != 103 || bar.Low != 98 || bar.Close != 101 {
		t.Errorf("bar = %+v, want 100/103/98/101", bar)
	}
}

func TestReadPricesSkipsMalformedLines(t *testing.T) {
	path := writeTempCSV(t, "junk\n\n2024-01-02,abc\n2024-01-03,100\n2024-01-04,-5\n")

	h, err := ReadPrices(path)
	if err != nil {
		t.Fatalf("ReadPrices failed: %v", err)
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 usable bar, got %d", h.Len())
	}
	if h.Bars[0].Close != 100 {
		t.Errorf("close = %g, want 100", h.Bars[0].Close)
	}
}

func TestReadPricesEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	h, err := ReadPrices(path)
	if err != nil {
		t.Fatalf("empty file should not error, got %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d bars", h.Len())
	}
	if _, ok := h.Last(); ok {
		t.Error("Last() on empty history should report ok=false")
	}
}

func TestReadPricesMissingFile(t *testing.T) {
	if _, err := ReadPrices(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
