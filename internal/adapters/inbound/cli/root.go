package cli

import (
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/config"
	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// skipConfig marks commands that must run even when the config file is
// broken.
const skipConfig = "typeguard/skip-config"

type globalOptions struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg domain.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{cfg: domain.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "typeguard",
		Short: "Catch type mismatches in MCP tool calls",
		Long: "typeguard validates MCP tool call arguments and responses against their schemas, " +
			"coerces safe mismatches and scores how type-safe a session was.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "Path to the config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "Write logs to stderr as JSON")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newCheckResponseCmd(opts))
	cmd.AddCommand(newCoerceCmd())
	cmd.AddCommand(newInferCmd())
	cmd.AddCommand(newSessionCmd(opts))
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	level := o.logLevel
	if cmd.Annotations[skipConfig] == "" {
		cfg, err := config.New().Load(o.configPath)
		if err != nil {
			return err
		}
		o.cfg = cfg
		if level == "" {
			level = cfg.LogLevel
		}
	}
	return logger.Initialize(level, o.logJSON)
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	defer logger.Cleanup()
	return newRootCmd().Execute()
}
