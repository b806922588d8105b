package stock

import (
	"fmt"
	"math"
	"sort"
)

// StockLength is a purchasable board length with its price.
type StockLength struct {
	LengthIn float64 `json:"length_in"`
	Price    float64 `json:"price"`
}

// RequiredCut is one cut length demanded by the cut-list.
type RequiredCut struct {
	LengthIn float64 `json:"length_in"`
	Quantity int     `json:"quantity"`
	Label    string  `json:"label"`
}

// Board is one purchased stock board with the cuts assigned to it.
type Board struct {
	Stock StockLength `json:"stock"`
	Cuts  []float64   `json:"cuts"`
}

// Used returns the total cut length consumed on the board, including the
// kerf lost to each cut.
func (b Board) Used(kerf float64) float64 {
	var total float64
	for _, c := range b.Cuts {
		total += c + kerf
	}
	return total
}

// Waste returns the unused length remaining on the board.
func (b Board) Waste(kerf float64) float64 {
	return b.Stock.LengthIn - b.Used(kerf)
}

// Pattern is a group of identically cut boards for reporting.
type Pattern struct {
	StockLengthIn float64   `json:"stock_length_in"`
	Cuts          []float64 `json:"cuts"`
	TimesUsed     int       `json:"times_used"`
}

// TheoreticalMinimums bounds the best possible outcome, used to judge
// solution quality.
type TheoreticalMinimums struct {
	TotalLengthNeeded float64     `json:"total_length_needed"`
	MinCost           float64     `json:"min_cost"`
	BestStock         StockLength `json:"best_stock"`
	PricePerInch      float64     `json:"price_per_inch"`
}

// Solution is the cutting plan for a purchase run.
type Solution struct {
	Boards      []Board             `json:"boards"`
	TotalCost   float64             `json:"total_cost"`
	TotalWaste  float64             `json:"total_waste"`
	Kerf        float64             `json:"kerf"`
	Theoretical TheoreticalMinimums `json:"theoretical"`
}

// Patterns collapses identically cut boards into patterns, grouped by
// stock length, longest stock first.
func (s Solution) Patterns() []Pattern {
	key := func(b Board) string {
		cuts := append([]float64(nil), b.Cuts...)
		sort.Float64s(cuts)
		k := fmt.Sprintf("%.2f:", b.Stock.LengthIn)
		for _, c := range cuts {
			k += fmt.Sprintf("%.2f,", c)
		}
		return k
	}

	counts := map[string]*Pattern{}
	var order []string
	for _, b := range s.Boards {
		k := key(b)
		if p, ok := counts[k]; ok {
			p.TimesUsed++
			continue
		}
		cuts := append([]float64(nil), b.Cuts...)
		sort.Sort(sort.Reverse(sort.Float64Slice(cuts)))
		counts[k] = &Pattern{StockLengthIn: b.Stock.LengthIn, Cuts: cuts, TimesUsed: 1}
		order = append(order, k)
	}

	patterns := make([]Pattern, 0, len(order))
	for _, k := range order {
		patterns = append(patterns, *counts[k])
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].StockLengthIn > patterns[j].StockLengthIn
	})
	return patterns
}

// computeTheoretical derives the lower bounds from total demand and the
// most price-efficient stock.
func computeTheoretical(cuts []RequiredCut, stocks []StockLength) TheoreticalMinimums {
	var needed float64
	for _, c := range cuts {
		needed += c.LengthIn * float64(c.Quantity)
	}

	best := stocks[0]
	bestRate := best.Price / best.LengthIn
	for _, s := range stocks[1:] {
		if rate := s.Price / s.LengthIn; rate < bestRate {
			best = s
			bestRate = rate
		}
	}

	return TheoreticalMinimums{
		TotalLengthNeeded: needed,
		MinCost:           needed * bestRate,
		BestStock:         best,
		PricePerInch:      bestRate,
	}
}

// bestStockFor returns the most price-efficient stock that fits the cut.
func bestStockFor(stocks []StockLength, length, kerf float64) (StockLength, bool) {
	var best StockLength
	bestRate := math.Inf(1)
	found := false
	for _, s := range stocks {
		if s.LengthIn >= length+kerf {
			if rate := s.Price / s.LengthIn; rate < bestRate {
				best = s
				bestRate = rate
				found = true
			}
		}
	}
	return best, found
}

// downgradeBoards swaps each board to the cheapest stock that still covers
// its cuts.
func downgradeBoards(boards []Board, stocks []StockLength, kerf float64) {
	for i := range boards {
		used := boards[i].Used(kerf)
		best := boards[i].Stock
		for _, s := range stocks {
			if s.LengthIn >= used && s.Price < best.Price {
				best = s
			}
		}
		boards[i].Stock = best
	}
}

// Optimize builds a cutting plan with a first-fit-decreasing heuristic:
// cuts are placed longest first into the board with the least remaining
// room that still fits, opening a new board of the most price-efficient
// adequate stock when nothing fits. A final pass downgrades each board to
// the cheapest stock length that still covers its cuts.
func Optimize(cuts []RequiredCut, stocks []StockLength, kerf float64) (Solution, error) {
	if len(cuts) == 0 {
		return Solution{}, fmt.Errorf("no cuts required")
	}
	if len(stocks) == 0 {
		return Solution{}, fmt.Errorf("no stock lengths available")
	}
	for _, s := range stocks {
		if s.LengthIn <= 0 {
			return Solution{}, fmt.Errorf("invalid stock length %g", s.LengthIn)
		}
	}

	// Expand demand into individual cut lengths, longest first.
	var expanded []float64
	maxStock := 0.0
	for _, s := range stocks {
		maxStock = math.Max(maxStock, s.LengthIn)
	}
	for _, c := range cuts {
		if c.LengthIn <= 0 || c.Quantity <= 0 {
			continue
		}
		if c.LengthIn+kerf > maxStock {
			return Solution{}, fmt.Errorf("cut %q (%g in) exceeds the longest stock (%g in)",
				c.Label, c.LengthIn, maxStock)
		}
		for i := 0; i < c.Quantity; i++ {
			expanded = append(expanded, c.LengthIn)
		}
	}
	if len(expanded) == 0 {
		return Solution{}, fmt.Errorf("no cuts required")
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(expanded)))

	var boards []Board
	remaining := []float64{} // per-board remaining length, parallel to boards

	for _, cut := range expanded {
		need := cut + kerf

		// Best-fit: the open board with the least leftover that still fits.
		bestIdx := -1
		for i, rem := range remaining {
			if rem >= need && (bestIdx < 0 || rem < remaining[bestIdx]) {
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			boards[bestIdx].Cuts = append(boards[bestIdx].Cuts, cut)
			remaining[bestIdx] -= need
			continue
		}

		s, ok := bestStockFor(stocks, cut, kerf)
		if !ok {
			return Solution{}, fmt.Errorf("no stock length fits a %g in cut", cut)
		}
		boards = append(boards, Board{Stock: s, Cuts: []float64{cut}})
		remaining = append(remaining, s.LengthIn-need)
	}

	// Downgrade pass: each board takes the cheapest stock that covers it.
	downgradeBoards(boards, stocks, kerf)

	sol := Solution{Boards: boards, Kerf: kerf, Theoretical: computeTheoretical(cuts, stocks)}
	for _, b := range boards {
		sol.TotalCost += b.Stock.Price
		sol.TotalWaste += b.Waste(kerf)
	}
	return sol, nil
}
