package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/models"
	"github.com/vinothezhumalai/legalmcpserver/internal/spinner"
)

func newEvaluateCommand() *cobra.Command {
	var (
		expectedArea  string
		minTier       string
		jsonOutput    bool
		strict        bool
		noBenchmarks  bool
		noPrecedents  bool
		confThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "evaluate [file]",
		Short: "Run a full quality evaluation on a legal document",
		Long: `Run a full quality evaluation on a legal document.

The document is summarized and classified, both outputs are judged across
14 weighted criteria, and the result is a quality scoreboard. Reads from
the given file, or from stdin when no file is provided.

With --min-tier, the command exits with code 1 when the overall tier falls
below the required one, which makes it usable as a CI gate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(args)
			if err != nil {
				return err
			}

			var requiredTier models.Tier
			if minTier != "" {
				requiredTier, err = models.ParseTier(minTier)
				if err != nil {
					return err
				}
			}

			service, err := buildService(slog.Default())
			if err != nil {
				return err
			}

			opts := config.DefaultEvaluationOptions()
			opts.StrictAccuracyMode = strict
			opts.IncludeComparativeBenchmarks = !noBenchmarks
			opts.RequirePrecedentAnalysis = !noPrecedents
			if cmd.Flags().Changed("confidence-threshold") {
				opts.MinimumConfidenceThreshold = confThreshold
			}

			stop := spinner.StartIfTerminal(cmd.ErrOrStderr(), "Evaluating document quality")
			report, err := service.Evaluate(cmd.Context(), document, expectedArea, opts)
			stop()
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), FormatScoreboardReport(report))
			}

			if minTier != "" && !report.Scoreboard.OverallTier.AtLeast(requiredTier) {
				return &QualityFailureError{
					Message: fmt.Sprintf("overall tier %s is below required tier %s (score %.2f)",
						report.Scoreboard.OverallTier, requiredTier, report.Scoreboard.OverallScore),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&expectedArea, "area", "", "Expected primary legal area (hypothesis for the classifier)")
	cmd.Flags().StringVar(&minTier, "min-tier", "", "Fail (exit 1) when the overall tier is below this (excellent, good, satisfactory, needs_improvement, poor)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Judge with strict accuracy standards")
	cmd.Flags().BoolVar(&noBenchmarks, "no-benchmarks", false, "Skip the industry benchmark comparison")
	cmd.Flags().BoolVar(&noPrecedents, "no-precedents", false, "Skip precedent analysis during classification")
	cmd.Flags().Float64Var(&confThreshold, "confidence-threshold", config.DefaultMinimumConfidence,
		"Classification confidence below this raises a quality flag")

	return cmd
}

// readDocument reads the document text from the file argument or stdin.
func readDocument(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading document: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading document from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no document provided: pass a file argument or pipe text to stdin")
	}
	return string(data), nil
}
