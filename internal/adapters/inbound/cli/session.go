package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/typeguard/internal/adapters/outbound/history"
	"github.com/openkraft/typeguard/internal/adapters/outbound/schemastore"
	"github.com/openkraft/typeguard/internal/adapters/outbound/tui"
	"github.com/openkraft/typeguard/internal/application"
	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/logger"
)

type sessionOutput struct {
	Stats *domain.SessionStats     `json:"stats"`
	Calls []application.CallResult `json:"calls"`
}

func newSessionCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput  bool
		verbose     bool
		showHistory bool
		ciMode      bool
		minScore    float64
		projectPath string
		noRecord    bool
	)

	cmd := &cobra.Command{
		Use:   "session <calls.jsonl>",
		Short: "Replay recorded tool calls and print a type safety scorecard",
		Long: "Replay a JSON Lines recording of tool calls, one {\"tool\", \"arguments\", \"response\"} object per line, " +
			"and score how many calls needed no type fixes. Each run is appended to the project's scorecard history.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calls, err := readCallsFrom(cmd, args[0])
			if err != nil {
				return err
			}

			svc := application.NewSessionService(opts.cfg, schemastore.New(opts.cfg))
			results, err := svc.Replay(calls)
			if err != nil {
				return err
			}
			stats := svc.Snapshot()

			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return errors.Wrap(err, "resolving project path")
			}
			scorecards := application.NewScorecardService(history.New(), gitinfo.New())

			if !noRecord {
				if _, err := scorecards.Record(absPath, stats); err != nil {
					logger.Named("cli").Warnw("scorecard not recorded", logger.FieldPath, absPath, logger.FieldError, err)
				}
			}

			if showHistory {
				entries, err := scorecards.History(absPath)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			if jsonOutput {
				if err := renderJSON(cmd, sessionOutput{Stats: stats, Calls: results}); err != nil {
					return err
				}
			} else {
				if verbose {
					for _, res := range results {
						if res.Skipped || res.Arguments.Clean() {
							continue
						}
						fmt.Fprintln(cmd.OutOrStdout(), tui.RenderReport(res.Arguments, res.Tool))
					}
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSession(stats))
			}

			if ciMode {
				return application.CheckMinimum(stats, minScore)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output stats and per-call reports as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the report of every call with findings")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show the scorecard history")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if the safety score is below --min")
	cmd.Flags().Float64Var(&minScore, "min", 80, "Minimum safety score for CI mode")
	cmd.Flags().StringVar(&projectPath, "project", ".", "Project directory holding the scorecard history")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not append this run to the history")

	return cmd
}

func readCallsFrom(cmd *cobra.Command, path string) ([]application.Call, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}
	return application.ReadCalls(r)
}
