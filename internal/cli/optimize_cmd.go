package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/woodshop-tools/framecad/internal/export"
	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/woodshop-tools/framecad/internal/project"
	"github.com/woodshop-tools/framecad/internal/stock"
)

func newOptimizeCmd() *cobra.Command {
	var (
		pricesPath string
		dimFilter  string
		policyName string
		kerf       float64
		search     string
		compare    bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "optimize <cutlist-file>",
		Short: "Plan stock purchases for a cut-list",
		Long: "Reads a cut-list and a stock price file, then packs the required\n" +
			"cuts onto purchasable board lengths with a first-fit-decreasing\n" +
			"heuristic, reporting the cutting patterns and cost against the\n" +
			"theoretical minimum.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				config = model.DefaultAppConfig()
			}
			if policyName == "" {
				policyName = config.DefaultPolicy
			}
			policy, ok := model.ParsePolicy(policyName)
			if !ok {
				return fmt.Errorf("unknown dimension policy %q (want standard or exact)", policyName)
			}
			if !cmd.Flags().Changed("kerf") {
				kerf = config.KerfWidth
			}

			sections, warnings, err := importCutList(args[0], policy)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				slog.Warn(w)
			}

			cuts, err := collectCuts(sections, dimFilter)
			if err != nil {
				return err
			}

			stocks, points, err := stock.ReadPricesCSV(pricesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var sol stock.Solution
			switch {
			case compare:
				results, err := stock.CompareStrategies(cuts, stocks, kerf, stock.DefaultGeneticConfig())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "Strategy comparison:")
				for _, r := range results {
					fmt.Fprintf(out, "  %-14s $%.2f, %d boards, %.1f%% waste (+$%.2f over minimum)\n",
						r.Name, r.Solution.TotalCost, r.BoardsUsed, r.WastePercent, r.CostOverMin)
				}
				fmt.Fprintln(out)
				sol = stock.Best(results).Solution
			case search == "genetic":
				sol, err = stock.OptimizeGenetic(cuts, stocks, kerf, stock.DefaultGeneticConfig())
				if err != nil {
					return err
				}
			case search == "heuristic":
				sol, err = stock.Optimize(cuts, stocks, kerf)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown search strategy %q (want heuristic or genetic)", search)
			}
			fmt.Fprintf(out, "Cuts needed: %.1f in total, kerf %.3f in\n",
				sol.Theoretical.TotalLengthNeeded, kerf)
			if m, err := stock.FitPriceModel(points); err == nil {
				fmt.Fprintf(out, "Price model: $%.2f per foot + $%.2f base (8 ft board ~ $%.2f)\n",
					m.Slope, m.Intercept, m.Estimate(8))
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "Buy %d boards:\n", len(sol.Boards))
			for _, p := range sol.Patterns() {
				cells := make([]string, len(p.Cuts))
				for i, c := range p.Cuts {
					cells[i] = fmt.Sprintf("%.2f", c)
				}
				fmt.Fprintf(out, "  %dx %.0f in board: [%s]\n",
					p.TimesUsed, p.StockLengthIn, strings.Join(cells, ", "))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Total cost:  $%.2f (theoretical minimum $%.2f)\n",
				sol.TotalCost, sol.Theoretical.MinCost)
			fmt.Fprintf(out, "Total waste: %.1f in\n", sol.TotalWaste)

			if reportPath != "" {
				if err := export.ExportCutReport(reportPath, sections, policy, &sol); err != nil {
					return fmt.Errorf("report export: %w", err)
				}
				fmt.Fprintf(out, "Wrote cut report to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pricesPath, "prices", "", "CSV of purchasable stock lengths (feet) and prices")
	cmd.Flags().StringVar(&dimFilter, "dim", "", "Optimize only this nominal size, e.g. 2x4")
	cmd.Flags().StringVar(&policyName, "policy", "", "Dimension policy: standard or exact (default from config)")
	cmd.Flags().Float64Var(&kerf, "kerf", 0.125, "Saw kerf in inches (default from config)")
	cmd.Flags().StringVar(&search, "search", "heuristic", "Packing strategy: heuristic or genetic")
	cmd.Flags().BoolVar(&compare, "compare", false, "Run both strategies and keep the cheaper plan")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a PDF cut report with the purchase plan")
	_ = cmd.MarkFlagRequired("prices")

	return cmd
}

// collectCuts flattens the section set into the optimizer's demand list.
// Stock prices are per nominal size, so a cut-list with several sizes must
// be narrowed with --dim before optimizing.
func collectCuts(set *model.SectionSet, dimFilter string) ([]stock.RequiredCut, error) {
	dims := map[string]bool{}
	var cuts []stock.RequiredCut
	for _, section := range set.Sections {
		for _, rec := range section.Records {
			if dimFilter != "" && rec.NominalDim != dimFilter {
				continue
			}
			dims[rec.NominalDim] = true
			cuts = append(cuts, stock.RequiredCut{
				LengthIn: rec.Length,
				Quantity: rec.Quantity,
				Label:    rec.Name,
			})
		}
	}
	if len(cuts) == 0 {
		if dimFilter != "" {
			return nil, fmt.Errorf("no records match size %q", dimFilter)
		}
		return nil, fmt.Errorf("no usable records in cut-list")
	}
	if len(dims) > 1 {
		names := make([]string, 0, len(dims))
		for d := range dims {
			names = append(names, d)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("cut-list mixes sizes (%s); pick one with --dim", strings.Join(names, ", "))
	}
	return cuts, nil
}
