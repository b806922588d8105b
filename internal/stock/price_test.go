package stock

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFitPriceModel_RecoversLinearPrices(t *testing.T) {
	// Prices generated from $0.55/ft + $0.80 base.
	points := []PricePoint{
		{LengthFt: 8, Price: 0.55*8 + 0.80},
		{LengthFt: 10, Price: 0.55*10 + 0.80},
		{LengthFt: 12, Price: 0.55*12 + 0.80},
		{LengthFt: 16, Price: 0.55*16 + 0.80},
	}
	m, err := FitPriceModel(points)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Slope-0.55) > 1e-9 {
		t.Errorf("slope: got %g, want 0.55", m.Slope)
	}
	if math.Abs(m.Intercept-0.80) > 1e-9 {
		t.Errorf("intercept: got %g, want 0.80", m.Intercept)
	}
	if math.Abs(m.Estimate(14)-(0.55*14+0.80)) > 1e-9 {
		t.Errorf("estimate: got %g", m.Estimate(14))
	}
}

func TestFitPriceModel_Errors(t *testing.T) {
	if _, err := FitPriceModel([]PricePoint{{LengthFt: 8, Price: 3}}); err == nil {
		t.Error("expected error for a single point")
	}
	same := []PricePoint{{LengthFt: 8, Price: 3}, {LengthFt: 8, Price: 4}}
	if _, err := FitPriceModel(same); err == nil {
		t.Error("expected error when all lengths coincide")
	}
}

func TestReadPricesCSV_WithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	content := "Length (ft),Price\n8,3.50\n10,4.60\n12,5.80\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	stocks, points, err := ReadPricesCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(stocks) != 3 || len(points) != 3 {
		t.Fatalf("expected 3 rows, got %d stocks, %d points", len(stocks), len(points))
	}
	if stocks[0].LengthIn != 96 {
		t.Errorf("8 ft should become 96 in, got %g", stocks[0].LengthIn)
	}
	if points[0].LengthFt != 8 || points[0].Price != 3.50 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
}

func TestReadPricesCSV_HeaderlessPositional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte("8,3.50\n12,5.80\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stocks, _, err := ReadPricesCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(stocks) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stocks))
	}
	if stocks[1].LengthIn != 144 {
		t.Errorf("12 ft should become 144 in, got %g", stocks[1].LengthIn)
	}
}

func TestReadPricesCSV_SkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	content := "length,price\n8,3.50\nnot,a,row\n-4,2.00\n12,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	stocks, _, err := ReadPricesCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(stocks) != 1 {
		t.Errorf("expected 1 usable row, got %d", len(stocks))
	}
}

func TestReadPricesCSV_Errors(t *testing.T) {
	if _, _, err := ReadPricesCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadPricesCSV(empty); err == nil {
		t.Error("expected error for empty file")
	}
}
