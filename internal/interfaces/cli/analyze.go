package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/application/analysis"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/client"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

func newAnalyzeCommand(root *RootOptions) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse a questionnaire submission",
		Long: "Reads a questionnaire submission as JSON from --file (or stdin with\n" +
			"--file -) and prints the profit-leak report.",
		Example: "  leakscan analyze --file answers.json\n" +
			"  cat answers.json | leakscan analyze --file - -o json\n" +
			"  leakscan analyze --file answers.json --server http://localhost:8080",
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), root.Timeout)
			defer cancel()

			report, err := runAnalysis(ctx, root.Server, answers)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), root.Output, report)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "", "path to the answers JSON (use - for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readAnswers(stdin io.Reader, path string) (*assessment.Answers, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}

	var answers assessment.Answers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	return &answers, nil
}

// runAnalysis picks the local rule engine or a remote server.
func runAnalysis(ctx context.Context, server string, answers *assessment.Answers) (*assessment.Report, error) {
	if server == "" {
		svc, err := analysis.NewService(analysis.ModeRules, nil, nil, nil, nil)
		if err != nil {
			return nil, err
		}
		result, err := svc.Analyze(ctx, answers)
		if err != nil {
			return nil, err
		}
		return result.Report, nil
	}

	api, err := client.NewClient(server)
	if err != nil {
		return nil, err
	}
	return api.Analyze(ctx, answers)
}

func printReport(w io.Writer, format string, report *assessment.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text":
		printTextReport(w, report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

func printTextReport(w io.Writer, report *assessment.Report) {
	fmt.Fprintln(w, report.Summary)
	fmt.Fprintln(w)

	for i, leak := range report.ProfitLeaks {
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, leak.Title, leak.PotentialImpact)
		fmt.Fprintf(w, "   %s\n", leak.Description)
		for _, step := range leak.ActionableInsights {
			fmt.Fprintf(w, "   - %s\n", step)
		}
	}

	if score := report.ProfitPerformanceScore; score != nil {
		fmt.Fprintf(w, "\nScore: %d/100 (%s)\n", score.Score, score.Label)
		if score.Summary != "" {
			fmt.Fprintf(w, "%s\n", score.Summary)
		}
	}
	if len(report.PatchPlan) > 0 {
		fmt.Fprintln(w, "\nPatch plan:")
		for i, step := range report.PatchPlan {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
	if rr := report.EstimatedRecoveryRange; rr != nil {
		fmt.Fprintf(w, "\nEstimated monthly recovery: %.0f-%.0f\n", rr.MonthlyMin, rr.MonthlyMax)
		if rr.Note != "" {
			fmt.Fprintln(w, strings.TrimSpace(rr.Note))
		}
	}

	fmt.Fprintf(w, "\n%s\n", report.Recommendation)
}

//Personal.AI order the ending
