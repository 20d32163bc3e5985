package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a .legalmcp.yaml project config",
		Long: `Write a .legalmcp.yaml project configuration file.

Without flags, the file is written with defaults. Use --interactive to run
a guided wizard that collects the settings instead.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided configuration wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	target := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}

	spec := &wizard.ConfigSpec{
		Model:           config.DefaultModel,
		MaxTokens:       config.DefaultMaxTokens,
		HistoryCapacity: config.DefaultHistoryCapacity,
		CacheEnabled:    false,
		CacheDir:        config.DefaultCacheDir,
	}

	if interactive {
		collected, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		spec = collected
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
	return nil
}
