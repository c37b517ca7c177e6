package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search questions by keyword",
		Long:  "Case-insensitive substring search over question titles, answer markup and tags.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().IntP("chapter", "c", 0, "Filter by chapter id")
	cmd.Flags().StringP("kind", "k", "", "Filter by kind: short or essay")
	cmd.Flags().BoolP("bookmarked", "b", false, "Only bookmarked questions")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	p, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}
	p.Text = strings.Join(args, " ")

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	return printQuestions(cmd, b.Filter(p), b.Chapters())
}
