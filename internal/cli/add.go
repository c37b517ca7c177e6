package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/qbank/internal/bank"
	"github.com/rcliao/qbank/internal/chapter"
	"github.com/rcliao/qbank/internal/model"
)

func init() {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question (admin)",
		Long:  "Add a question. The answer (HTML) comes from --answer, --answer-file (- for stdin) or piped stdin.",
		RunE:  runAdd,
	}
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a question (admin)",
		Long:  "Edit a question. Only the given flags change; the bookmark flag is kept. Stdin is read only with --answer-file -.",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}

	for _, cmd := range []*cobra.Command{addCmd, editCmd} {
		cmd.Flags().IntP("chapter", "c", 1, "Chapter id")
		cmd.Flags().StringP("kind", "k", "short", "Kind: short or essay")
		cmd.Flags().String("title", "", "Question title")
		cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
		cmd.Flags().StringP("answer", "a", "", "Answer body (HTML)")
		cmd.Flags().String("answer-file", "", "Read the answer body from a file, or - for stdin")
		RootCmd.AddCommand(cmd)
	}
	addCmd.MarkFlagRequired("title")
}

// readAnswer returns the answer from flags or stdin, and whether one was
// given at all. Stdin is read for --answer-file -, or when piped is set and
// stdin is not a terminal.
func readAnswer(cmd *cobra.Command, piped bool) (string, bool, error) {
	if cmd.Flags().Changed("answer") {
		a, _ := cmd.Flags().GetString("answer")
		return a, true, nil
	}
	path, _ := cmd.Flags().GetString("answer-file")
	switch path {
	case "-":
		return readStdin(cmd.InOrStdin())
	case "":
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("read answer file: %w", err)
		}
		return string(b), true, nil
	}
	if !piped {
		return "", false, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", false, nil
		}
	}
	return readStdin(in)
}

func readStdin(in io.Reader) (string, bool, error) {
	b, err := io.ReadAll(in)
	if err != nil {
		return "", false, fmt.Errorf("read stdin: %w", err)
	}
	return string(b), len(b) > 0, nil
}

// applyDraftFlags overlays the changed flags (or all flags when all is set)
// onto d. Piped stdin is only picked up when all is set, which is the add path.
func applyDraftFlags(cmd *cobra.Command, d *bank.Draft, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("chapter") {
		id, _ := cmd.Flags().GetInt("chapter")
		if !chapter.Valid(id) {
			return fmt.Errorf("unknown chapter %d", id)
		}
		d.ChapterID = id
	}
	if changed("kind") {
		s, _ := cmd.Flags().GetString("kind")
		kind, ok := model.ParseKind(s)
		if !ok {
			return fmt.Errorf("invalid kind %q (valid: short, essay)", s)
		}
		d.Kind = kind
	}
	if changed("title") {
		d.Title, _ = cmd.Flags().GetString("title")
	}
	if changed("tags") {
		s, _ := cmd.Flags().GetString("tags")
		d.Tags = bank.ParseTags(s)
	}

	answer, ok, err := readAnswer(cmd, all)
	if err != nil {
		return err
	}
	if ok {
		d.AnswerBody = answer
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	var d bank.Draft
	if err := applyDraftFlags(cmd, &d, true); err != nil {
		return err
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	q, err := b.Create(cmd.Context(), d)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return printJSON(cmd, q)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	cur, err := b.Get(args[0])
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	d := bank.Draft{
		ChapterID:  cur.ChapterID,
		Title:      cur.Title,
		Kind:       cur.Kind,
		AnswerBody: cur.AnswerBody,
		Tags:       cur.Tags,
	}
	if err := applyDraftFlags(cmd, &d, false); err != nil {
		return err
	}

	q, err := b.Update(cmd.Context(), cur.ID, d)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return printJSON(cmd, q)
}
