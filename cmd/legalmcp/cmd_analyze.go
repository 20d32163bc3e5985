package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinothezhumalai/legalmcpserver/internal/spinner"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		expectedArea string
		jsonOutput   bool
		noPrecedents bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Summarize and classify a legal document without judging",
		Long: `Summarize and classify a legal document without running the quality judges.

This is the cheaper half of an evaluation: one summarization call and one
classification call, no scoring. Reads from the given file, or from stdin
when no file is provided.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(args)
			if err != nil {
				return err
			}

			service, err := buildService(slog.Default())
			if err != nil {
				return err
			}

			stop := spinner.StartIfTerminal(cmd.ErrOrStderr(), "Analyzing document")
			da, err := service.Analyze(cmd.Context(), document, expectedArea, !noPrecedents)
			stop()
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(da, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "## Summary\n\n%s\n", da.Summary.Summary)
			if len(da.Summary.KeyPoints) > 0 {
				fmt.Fprintf(out, "\nKey points:\n")
				for _, kp := range da.Summary.KeyPoints {
					fmt.Fprintf(out, "- %s\n", kp)
				}
			}
			fmt.Fprintf(out, "\n## Classification\n\n")
			fmt.Fprintf(out, "Primary area: %s (confidence %.2f)\n", da.Classification.PrimaryArea, da.Classification.Confidence)
			if len(da.Classification.SubAreas) > 0 {
				fmt.Fprintf(out, "Sub-areas: %s\n", strings.Join(da.Classification.SubAreas, ", "))
			}
			if da.Classification.Jurisdiction != "" {
				fmt.Fprintf(out, "Jurisdiction: %s\n", da.Classification.Jurisdiction)
			}
			for _, p := range da.Classification.Precedents {
				fmt.Fprintf(out, "Precedent: %s (%s): %s\n", p.Name, p.Citation, p.Relevance)
			}
			if da.Classification.Reasoning != "" {
				fmt.Fprintf(out, "\n%s\n", da.Classification.Reasoning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&expectedArea, "area", "", "Expected primary legal area (hypothesis for the classifier)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the analysis as JSON")
	cmd.Flags().BoolVar(&noPrecedents, "no-precedents", false, "Skip precedent analysis")

	return cmd
}
