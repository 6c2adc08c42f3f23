package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subins2000/quemoji/internal/corpus"
	"github.com/subins2000/quemoji/internal/ranker"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Print the ranked emoji for a query",
	Long: `Ranks every emoji shortcode against the query with the same fuzzy
matching the picker uses, and prints one "<emoji> <shortcode>" per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

type searchResult struct {
	Emoji string  `json:"emoji"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	results := ranker.New(ranker.Options{MinScore: cfg.MinScore}).Rank(query, corpus.Default(), cfg.Limit)

	if searchJSON {
		out := make([]searchResult, len(results))
		for i, res := range results {
			out[i] = searchResult{Emoji: res.Glyph, Label: res.Label, Score: res.Score}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.PrintErrln("No matches.")
		return nil
	}
	for _, res := range results {
		fmt.Fprintln(cmd.OutOrStdout(), res.Label)
	}
	return nil
}
