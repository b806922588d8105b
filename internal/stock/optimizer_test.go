package stock

import (
	"math"
	"testing"
)

var testStocks = []StockLength{
	{LengthIn: 96, Price: 3.50},
	{LengthIn: 120, Price: 4.60},
	{LengthIn: 144, Price: 5.80},
	{LengthIn: 192, Price: 8.90},
}

func TestOptimize_SingleCutPicksCheapestAdequateStock(t *testing.T) {
	cuts := []RequiredCut{{LengthIn: 90, Quantity: 1, Label: "Plate"}}
	sol, err := Optimize(cuts, testStocks, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(sol.Boards))
	}
	if sol.Boards[0].Stock.LengthIn != 96 {
		t.Errorf("expected the 96 in board, got %g", sol.Boards[0].Stock.LengthIn)
	}
	if sol.TotalCost != 3.50 {
		t.Errorf("expected $3.50, got $%.2f", sol.TotalCost)
	}
}

func TestOptimize_PacksMultipleCutsPerBoard(t *testing.T) {
	// Three 30 in cuts plus kerf fit on one 96 in board.
	cuts := []RequiredCut{{LengthIn: 30, Quantity: 3, Label: "Block"}}
	sol, err := Optimize(cuts, testStocks, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(sol.Boards))
	}
	if len(sol.Boards[0].Cuts) != 3 {
		t.Errorf("expected 3 cuts on the board, got %d", len(sol.Boards[0].Cuts))
	}
}

func TestOptimize_KerfForcesSecondBoard(t *testing.T) {
	// Two 48 in cuts fit a 96 in board only with zero kerf.
	cuts := []RequiredCut{{LengthIn: 48, Quantity: 2, Label: "Half"}}

	sol, err := Optimize(cuts, []StockLength{{LengthIn: 96, Price: 3.50}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Boards) != 1 {
		t.Errorf("zero kerf: expected 1 board, got %d", len(sol.Boards))
	}

	sol, err = Optimize(cuts, []StockLength{{LengthIn: 96, Price: 3.50}}, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Boards) != 2 {
		t.Errorf("with kerf: expected 2 boards, got %d", len(sol.Boards))
	}
}

func TestOptimize_DowngradePass(t *testing.T) {
	// A 100 in cut needs at least the 120 in board; the downgrade pass must
	// not leave it on a longer, pricier stick.
	cuts := []RequiredCut{{LengthIn: 100, Quantity: 1, Label: "Long"}}
	sol, err := Optimize(cuts, testStocks, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Boards[0].Stock.LengthIn != 120 {
		t.Errorf("expected downgrade to 120 in, got %g", sol.Boards[0].Stock.LengthIn)
	}
}

func TestOptimize_CutLongerThanAnyStock(t *testing.T) {
	cuts := []RequiredCut{{LengthIn: 500, Quantity: 1, Label: "Beam"}}
	if _, err := Optimize(cuts, testStocks, 0.125); err == nil {
		t.Fatal("expected error for oversized cut")
	}
}

func TestOptimize_InputValidation(t *testing.T) {
	if _, err := Optimize(nil, testStocks, 0); err == nil {
		t.Error("expected error for no cuts")
	}
	if _, err := Optimize([]RequiredCut{{LengthIn: 10, Quantity: 1}}, nil, 0); err == nil {
		t.Error("expected error for no stocks")
	}
	if _, err := Optimize([]RequiredCut{{LengthIn: 10, Quantity: 1}},
		[]StockLength{{LengthIn: -5, Price: 1}}, 0); err == nil {
		t.Error("expected error for invalid stock length")
	}
	if _, err := Optimize([]RequiredCut{{LengthIn: -10, Quantity: 1}}, testStocks, 0); err == nil {
		t.Error("expected error when no valid cuts remain")
	}
}

func TestOptimize_TheoreticalMinimums(t *testing.T) {
	cuts := []RequiredCut{
		{LengthIn: 90, Quantity: 2, Label: "A"},
		{LengthIn: 45, Quantity: 1, Label: "B"},
	}
	sol, err := Optimize(cuts, testStocks, 0)
	if err != nil {
		t.Fatal(err)
	}

	if sol.Theoretical.TotalLengthNeeded != 225 {
		t.Errorf("expected 225 in demand, got %g", sol.Theoretical.TotalLengthNeeded)
	}

	// The 96 in board at $3.50 is the most price-efficient stock here.
	bestRate := 3.50 / 96
	for _, s := range testStocks {
		if r := s.Price / s.LengthIn; r < bestRate {
			bestRate = r
		}
	}
	if math.Abs(sol.Theoretical.PricePerInch-bestRate) > 1e-12 {
		t.Errorf("price per inch: got %g, want %g", sol.Theoretical.PricePerInch, bestRate)
	}
	if sol.TotalCost < sol.Theoretical.MinCost {
		t.Errorf("actual cost %.2f beats theoretical minimum %.2f", sol.TotalCost, sol.Theoretical.MinCost)
	}
}

func TestOptimize_WasteAccounting(t *testing.T) {
	cuts := []RequiredCut{{LengthIn: 90, Quantity: 1, Label: "A"}}
	sol, err := Optimize(cuts, []StockLength{{LengthIn: 96, Price: 3.50}}, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sol.TotalWaste-(96-90.125)) > 1e-9 {
		t.Errorf("waste: got %g", sol.TotalWaste)
	}
}

func TestSolution_PatternsCollapseIdenticalBoards(t *testing.T) {
	cuts := []RequiredCut{{LengthIn: 90, Quantity: 3, Label: "Plate"}}
	sol, err := Optimize(cuts, testStocks, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Boards) != 3 {
		t.Fatalf("expected 3 boards, got %d", len(sol.Boards))
	}

	patterns := sol.Patterns()
	if len(patterns) != 1 {
		t.Fatalf("expected 1 collapsed pattern, got %d", len(patterns))
	}
	if patterns[0].TimesUsed != 3 {
		t.Errorf("expected pattern used 3 times, got %d", patterns[0].TimesUsed)
	}
}

func TestSolution_PatternsSortLongestStockFirst(t *testing.T) {
	cuts := []RequiredCut{
		{LengthIn: 180, Quantity: 1, Label: "Long"},
		{LengthIn: 90, Quantity: 1, Label: "Short"},
	}
	sol, err := Optimize(cuts, testStocks, 0.125)
	if err != nil {
		t.Fatal(err)
	}
	patterns := sol.Patterns()
	for i := 1; i < len(patterns); i++ {
		if patterns[i-1].StockLengthIn < patterns[i].StockLengthIn {
			t.Errorf("patterns not sorted: %g before %g",
				patterns[i-1].StockLengthIn, patterns[i].StockLengthIn)
		}
	}
}
