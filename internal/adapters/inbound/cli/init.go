package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/config"
	"github.com/openkraft/typeguard/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Generate a .typeguard.yaml configuration file",
		Long:        "Create a commented .typeguard.yaml and an empty schemas directory.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return errors.Wrap(err, "resolving path")
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return errors.Newf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.MkdirAll(filepath.Join(absPath, domain.DefaultSchemasDir), 0755); err != nil {
				return errors.Wrap(err, "creating schemas directory")
			}
			if err := os.WriteFile(dest, []byte(config.Starter), 0644); err != nil {
				return errors.Wrap(err, "writing config")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s and %s/\n", config.FileName, domain.DefaultSchemasDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .typeguard.yaml")

	return cmd
}
