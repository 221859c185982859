package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default vtree.json",
		Long: `Write a vtree.json with default settings to the given directory.

Examples:
  vtree init
  vtree init --dir=playground --force`,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("E120").
					WithDetail(path + " already exists").
					WithSuggestion("Use --force to overwrite it")
			}

			cfg := config.New()
			cfg.Metrics.Enabled = true
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write vtree.json to")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing vtree.json")

	return cmd
}
