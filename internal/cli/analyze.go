package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go-seo-analyzer/internal/analyzer"
)

var (
	analyzeTop  int
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze one URL and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 20, "rows in each keyword table; overrides TOP_N")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if cmd.Flags().Changed("top") {
		cfg.TopN = analyzeTop
	}

	a, err := analyzer.Build(ctx, cfg, log, nil)
	if err != nil {
		return err
	}

	result, err := a.Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analysis failed (%s): %w", analyzer.KindOf(err), err)
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	WriteReport(cmd.OutOrStdout(), result)
	return nil
}
