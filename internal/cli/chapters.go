package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/qbank/internal/chapter"
	"github.com/rcliao/qbank/internal/render"
)

func init() {
	chaptersCmd := &cobra.Command{
		Use:   "chapters",
		Short: "List chapters",
		RunE:  runChapters,
	}

	renameCmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename chapters (admin)",
		Long:  `Rename chapters with --set ID=TITLE (repeatable). An empty title restores the default. --reset clears all renames first. --pin saves every current title as an override.`,
		RunE:  runChaptersRename,
	}
	renameCmd.Flags().StringArray("set", nil, "ID=TITLE")
	renameCmd.Flags().Bool("reset", false, "Drop all existing renames")
	renameCmd.Flags().Bool("pin", false, "Store every current title, not just the changed ones")
	renameCmd.MarkFlagsMutuallyExclusive("reset", "pin")

	chaptersCmd.AddCommand(renameCmd)
	RootCmd.AddCommand(chaptersCmd)
}

func runChapters(cmd *cobra.Command, args []string) error {
	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if !textFormat() {
		return printJSON(cmd, b.Chapters())
	}
	counts := map[int]int{}
	for _, q := range b.Questions() {
		counts[q.ChapterID]++
	}
	for _, ch := range b.Chapters() {
		fmt.Fprintf(cmd.OutOrStdout(), "%d  %s %s\n", ch.ID, render.Heading.Render(ch.Title),
			render.Muted.Render(fmt.Sprintf("(%d)", counts[ch.ID])))
	}
	return nil
}

// parseRename parses "ID=TITLE".
func parseRename(s string) (int, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid --set %q (want ID=TITLE)", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(k))
	if err != nil || !chapter.Valid(id) {
		return 0, "", fmt.Errorf("unknown chapter %q", k)
	}
	return id, strings.TrimSpace(v), nil
}

func runChaptersRename(cmd *cobra.Command, args []string) error {
	sets, _ := cmd.Flags().GetStringArray("set")
	reset, _ := cmd.Flags().GetBool("reset")
	pin, _ := cmd.Flags().GetBool("pin")
	if len(sets) == 0 && !reset && !pin {
		return fmt.Errorf("rename: nothing to do (use --set ID=TITLE, --reset or --pin)")
	}
	if err := requireAdmin(); err != nil {
		return err
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	overrides := b.Overrides()
	switch {
	case reset:
		overrides = map[int]string{}
	case pin:
		overrides = chapter.FullOverrides(b.Chapters())
	}
	for _, set := range sets {
		id, title, err := parseRename(set)
		if err != nil {
			return err
		}
		if title == "" {
			delete(overrides, id)
			continue
		}
		overrides[id] = title
	}

	if err := b.RenameChapters(cmd.Context(), overrides); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return printJSON(cmd, b.Chapters())
}
