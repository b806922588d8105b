package stock

// StrategyResult holds the cutting plan and summary statistics for one
// packing strategy, for side-by-side comparison.
type StrategyResult struct {
	Name         string
	Solution     Solution
	BoardsUsed   int
	WastePercent float64
	CostOverMin  float64
}

// CompareStrategies runs both packing strategies on the same demand and
// returns their results in a fixed order: heuristic first, then genetic.
// Callers pick a winner by cost; ties go to the earlier entry.
func CompareStrategies(cuts []RequiredCut, stocks []StockLength, kerf float64, config GeneticConfig) ([]StrategyResult, error) {
	heuristic, err := Optimize(cuts, stocks, kerf)
	if err != nil {
		return nil, err
	}
	genetic, err := OptimizeGenetic(cuts, stocks, kerf, config)
	if err != nil {
		return nil, err
	}

	return []StrategyResult{
		summarize("longest-first", heuristic),
		summarize("genetic", genetic),
	}, nil
}

// Best returns the lowest-cost result from a comparison run.
func Best(results []StrategyResult) StrategyResult {
	best := results[0]
	for _, r := range results[1:] {
		if r.Solution.TotalCost < best.Solution.TotalCost {
			best = r
		}
	}
	return best
}

func summarize(name string, sol Solution) StrategyResult {
	var bought float64
	for _, b := range sol.Boards {
		bought += b.Stock.LengthIn
	}
	wastePct := 0.0
	if bought > 0 {
		wastePct = sol.TotalWaste / bought * 100
	}
	return StrategyResult{
		Name:         name,
		Solution:     sol,
		BoardsUsed:   len(sol.Boards),
		WastePercent: wastePct,
		CostOverMin:  sol.TotalCost - sol.Theoretical.MinCost,
	}
}
