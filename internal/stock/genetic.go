package stock

import (
	"fmt"
	"math/rand"
	"sort"
)

// GeneticConfig holds parameters for the genetic algorithm optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           1,
	}
}

// chromosome is a candidate solution: an ordering of the expanded cuts.
type chromosome struct {
	order   []int
	fitness float64
}

// geneticOptimizer searches cut orderings whose first-fit packing beats the
// longest-first heuristic.
type geneticOptimizer struct {
	config   GeneticConfig
	expanded []float64
	stocks   []StockLength
	kerf     float64
	rng      *rand.Rand
}

// OptimizeGenetic runs the genetic search over cut orderings. The
// longest-first ordering is seeded into the initial population, so the
// result is never worse than the plain heuristic by cost.
func OptimizeGenetic(cuts []RequiredCut, stocks []StockLength, kerf float64, config GeneticConfig) (Solution, error) {
	baseline, err := Optimize(cuts, stocks, kerf)
	if err != nil {
		return Solution{}, err
	}
	if config.PopulationSize < 2 || config.Generations < 1 {
		return Solution{}, fmt.Errorf("invalid genetic config: population %d, generations %d",
			config.PopulationSize, config.Generations)
	}

	var expanded []float64
	for _, c := range cuts {
		if c.LengthIn <= 0 || c.Quantity <= 0 {
			continue
		}
		for i := 0; i < c.Quantity; i++ {
			expanded = append(expanded, c.LengthIn)
		}
	}
	if len(expanded) < 2 {
		return baseline, nil
	}

	g := &geneticOptimizer{
		config:   config,
		expanded: expanded,
		stocks:   stocks,
		kerf:     kerf,
		rng:      rand.New(rand.NewSource(config.Seed)),
	}

	best := g.run()
	best.Theoretical = baseline.Theoretical
	if best.TotalCost < baseline.TotalCost ||
		(best.TotalCost == baseline.TotalCost && best.TotalWaste < baseline.TotalWaste) {
		return best, nil
	}
	return baseline, nil
}

// run executes the evolution loop and decodes the best survivor.
func (g *geneticOptimizer) run() Solution {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged.
		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, chromosome{
				order:   append([]int(nil), population[i].order...),
				fitness: population[i].fitness,
			})
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return g.decode(population[0])
}

// initPopulation creates random orderings, seeding one chromosome with the
// longest-first order so the search starts at the heuristic baseline.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.expanded)
	population := make([]chromosome, g.config.PopulationSize)
	for i := range population {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}

	greedy := make([]int, n)
	for i := range greedy {
		greedy[i] = i
	}
	sort.Slice(greedy, func(i, j int) bool {
		return g.expanded[greedy[i]] > g.expanded[greedy[j]]
	})
	population[0] = chromosome{order: greedy}

	return population
}

// evaluate scores a chromosome: lower cost is better, with waste as the
// tie-breaker.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	sol := g.decode(c)
	if len(sol.Boards) == 0 {
		return 0
	}
	return -(sol.TotalCost + sol.TotalWaste*1e-6)
}

// decode packs the cuts in chromosome order with the same best-fit board
// selection and downgrade pass as the heuristic optimizer.
func (g *geneticOptimizer) decode(c chromosome) Solution {
	var boards []Board
	var remaining []float64

	for _, idx := range c.order {
		cut := g.expanded[idx]
		need := cut + g.kerf

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

		s, ok := bestStockFor(g.stocks, cut, g.kerf)
		if !ok {
			// Unpackable cut; Optimize already rejected this input.
			continue
		}
		boards = append(boards, Board{Stock: s, Cuts: []float64{cut}})
		remaining = append(remaining, s.LengthIn-need)
	}

	downgradeBoards(boards, g.stocks, g.kerf)

	sol := Solution{Boards: boards, Kerf: g.kerf}
	for _, b := range boards {
		sol.TotalCost += b.Stock.Price
		sol.TotalWaste += b.Waste(g.kerf)
	}
	return sol
}

// tournamentSelect picks the fittest of a random sample.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return best
}

// orderCrossover applies OX1: a slice of parent1's order is kept in place
// and the gaps are filled with parent2's remaining cuts in parent2 order.
func (g *geneticOptimizer) orderCrossover(p1, p2 chromosome) chromosome {
	n := len(p1.order)
	start := g.rng.Intn(n)
	end := start + g.rng.Intn(n-start)

	child := make([]int, n)
	inSlice := make(map[int]bool, end-start+1)
	for i := start; i <= end; i++ {
		child[i] = p1.order[i]
		inSlice[p1.order[i]] = true
	}

	pos := 0
	for _, v := range p2.order {
		if inSlice[v] {
			continue
		}
		for pos >= start && pos <= end {
			pos++
		}
		if pos >= n {
			break
		}
		child[pos] = v
		pos++
	}
	return chromosome{order: child}
}

// mutate swaps random pairs of cuts with the configured probability.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	for i := 0; i < n; i++ {
		if g.rng.Float64() < g.config.MutationRate {
			j := g.rng.Intn(n)
			c.order[i], c.order[j] = c.order[j], c.order[i]
		}
	}
}
