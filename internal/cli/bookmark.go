package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "bookmark <id>",
		Short: "Toggle a question's bookmark",
		Args:  cobra.ExactArgs(1),
		RunE:  runBookmark,
	}

	RootCmd.AddCommand(cmd)
}

func runBookmark(cmd *cobra.Command, args []string) error {
	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	q, err := b.ToggleBookmark(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("bookmark: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"bookmarked":%t}`+"\n", q.ID, q.Bookmarked)
	return nil
}
