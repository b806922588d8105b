package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/woodshop-tools/framecad/internal/project"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore all application data",
	}
	cmd.AddCommand(newBackupExportCmd())
	cmd.AddCommand(newBackupImportCmd())
	return cmd
}

func newBackupExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <backup-file>",
		Short: "Write config and all recent projects to a single backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				return fmt.Errorf("app config: %w", err)
			}

			var projects []*project.Project
			for _, path := range config.RecentProjects {
				p, err := project.LoadProject(path)
				if err != nil {
					slog.Warn("skipping unreadable project", "path", path, "error", err)
					continue
				}
				projects = append(projects, p)
			}

			if err := project.ExportAllData(args[0], config, projects); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported config and %d projects to %s\n", len(projects), args[0])
			return nil
		},
	}
}

func newBackupImportCmd() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "import <backup-file>",
		Short: "Restore config and projects from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}

			if projectDir == "" {
				projectDir = filepath.Join(project.DefaultConfigDir(), "projects")
			}

			config := backup.Config
			config.RecentProjects = nil
			for _, p := range backup.Projects {
				path := filepath.Join(projectDir, p.Name+".json")
				if err := project.SaveProject(path, p); err != nil {
					return fmt.Errorf("restoring project %q: %w", p.Name, err)
				}
				project.RememberProject(&config, path)
			}

			if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
				return fmt.Errorf("app config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored config and %d projects (backup from %s)\n",
				len(backup.Projects), backup.CreatedAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project-dir", "", "Directory to restore project files into (default ~/.framecad/projects)")

	return cmd
}
