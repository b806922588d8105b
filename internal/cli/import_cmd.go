package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/woodshop-tools/framecad/internal/export"
	"github.com/woodshop-tools/framecad/internal/importer"
	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/woodshop-tools/framecad/internal/project"
	"github.com/woodshop-tools/framecad/internal/scene"
	"github.com/woodshop-tools/framecad/internal/synth"
)

func newImportCmd() *cobra.Command {
	var (
		policyName    string
		gableFallback string
		dxfPath       string
		reportPath    string
		labelsPath    string
		projectPath   string
	)

	cmd := &cobra.Command{
		Use:   "import <cutlist-file>",
		Short: "Import a cut-list and build 3D board geometry",
		Long: "Reads a CSV or Excel cut-list, resolves nominal lumber dimensions,\n" +
			"synthesizes a solid per board, and groups them by section.\n" +
			"Optionally exports the result as DXF wireframes, a PDF cut report,\n" +
			"QR part labels, or a saved project file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			config, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				slog.Warn("could not read app config, using defaults", "error", err)
				config = model.DefaultAppConfig()
			}
			if policyName == "" {
				policyName = config.DefaultPolicy
			}
			if gableFallback == "" {
				gableFallback = config.GableFallback
			}

			policy, ok := model.ParsePolicy(policyName)
			if !ok {
				return fmt.Errorf("unknown dimension policy %q (want standard or exact)", policyName)
			}
			if gableFallback != model.GableFallbackBox && gableFallback != model.GableFallbackSkip {
				return fmt.Errorf("unknown gable fallback %q (want box or skip)", gableFallback)
			}

			sections, warnings, err := importCutList(path, policy)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				slog.Warn(w)
			}
			if sections.Len() == 0 {
				return fmt.Errorf("no usable records in %s", path)
			}

			doc := &scene.MemDocument{}
			placer := scene.NewPlacer(doc)
			placer.Opts = synth.Options{GableFallback: gableFallback}
			report := placer.Place(sections)
			for _, w := range report.Warnings {
				slog.Warn(w)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sections, %d line items (%s dimensions)\n",
				len(sections.Sections), sections.Len(), policy)
			fmt.Fprintf(cmd.OutOrStdout(), "Placed %d boards", report.Placed)
			if report.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", skipped %d", report.Skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())

			if dxfPath != "" {
				if err := export.ExportDXF(dxfPath, doc); err != nil {
					return fmt.Errorf("DXF export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote DXF wireframes to %s\n", dxfPath)
			}
			if reportPath != "" {
				if err := export.ExportCutReport(reportPath, sections, policy, nil); err != nil {
					return fmt.Errorf("report export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote cut report to %s\n", reportPath)
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, doc); err != nil {
					return fmt.Errorf("label export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote part labels to %s\n", labelsPath)
			}
			if projectPath != "" {
				name := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))
				p := project.NewProject(name, sections, config)
				p.Policy = policy.String()
				p.GableFallback = gableFallback
				p.SourceFile = path
				if err := project.SaveProject(projectPath, p); err != nil {
					return fmt.Errorf("project save: %w", err)
				}
				project.RememberProject(&config, projectPath)
				if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
					slog.Warn("could not update app config", "error", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved project to %s\n", projectPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&policyName, "policy", "", "Dimension policy: standard or exact (default from config)")
	cmd.Flags().StringVar(&gableFallback, "gable-fallback", "", "Degenerate gable recovery: box or skip (default from config)")
	cmd.Flags().StringVar(&dxfPath, "dxf", "", "Write DXF wireframes to this path")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a PDF cut report to this path")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "Write QR part labels PDF to this path")
	cmd.Flags().StringVar(&projectPath, "project", "", "Save the imported cut-list as a project file")

	return cmd
}

// importCutList dispatches on file extension: .xlsx/.xlsm go through the
// Excel reader, everything else is treated as CSV.
func importCutList(path string, policy model.DimensionPolicy) (*model.SectionSet, []string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path, policy)
	default:
		return importer.ImportCSV(path, policy)
	}
}
