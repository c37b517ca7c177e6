package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/qbank/internal/model"
	"github.com/rcliao/qbank/internal/query"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions",
		Long:  "List questions in stored order. Filters combine: search text, then chapter, kind and bookmarks.",
		RunE:  runList,
	}

	cmd.Flags().IntP("chapter", "c", 0, "Filter by chapter id")
	cmd.Flags().StringP("kind", "k", "", "Filter by kind: short or essay")
	cmd.Flags().BoolP("bookmarked", "b", false, "Only bookmarked questions")
	cmd.Flags().StringP("search", "s", "", "Substring match on title, answer and tags")
	cmd.Flags().Bool("admin", false, "All questions, most recently updated first")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")

	RootCmd.AddCommand(cmd)
}

func queryFromFlags(cmd *cobra.Command) (query.Params, error) {
	chapterID, _ := cmd.Flags().GetInt("chapter")
	kindStr, _ := cmd.Flags().GetString("kind")
	bookmarked, _ := cmd.Flags().GetBool("bookmarked")
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	p := query.Params{
		Text:           search,
		ChapterID:      chapterID,
		BookmarkedOnly: bookmarked,
		Limit:          limit,
	}
	if kindStr != "" {
		kind, ok := model.ParseKind(kindStr)
		if !ok {
			return p, fmt.Errorf("invalid kind %q (valid: short, essay)", kindStr)
		}
		p.Kind = kind
	}
	return p, nil
}

func runList(cmd *cobra.Command, args []string) error {
	admin, _ := cmd.Flags().GetBool("admin")
	p, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	var qs []model.Question
	if admin {
		qs = query.Filter(b.AdminListing(), p)
	} else {
		qs = b.Filter(p)
	}
	return printQuestions(cmd, qs, b.Chapters())
}
