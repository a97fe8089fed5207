// Package cli implements the leakscan command-line interface: a local runner
// for the deterministic engine and a thin client for a running API server.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global CLI flags.
type RootOptions struct {
	Output  string
	Server  string
	Timeout time.Duration
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "leakscan",
		Short: "ProfitLeak-Intelligence CLI: find where a business is leaking profit",
		Long: "leakscan analyses a business questionnaire and reports the profit leaks\n" +
			"it finds, ranked by severity. By default the deterministic rule engine\n" +
			"runs locally; point --server at a running API server to use its\n" +
			"configured engine instead.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.Output, "output", "o", "text", "output format (text, json)")
	pf.StringVar(&opts.Server, "server", "", "API server address (empty: run the rule engine locally)")
	pf.DurationVar(&opts.Timeout, "timeout", 60*time.Second, "operation timeout")

	cmd.AddCommand(newAnalyzeCommand(opts))

	return cmd
}

//Personal.AI order the ending
