package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/qbank/internal/chapter"
	"github.com/rcliao/qbank/internal/model"
	"github.com/rcliao/qbank/internal/render"
)

func textFormat() bool {
	return formatFlag == "text"
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

// printQuestions writes a question list as JSON or as one line per question.
func printQuestions(cmd *cobra.Command, qs []model.Question, chapters []model.Chapter) error {
	if !textFormat() {
		if qs == nil {
			qs = []model.Question{}
		}
		return printJSON(cmd, qs)
	}
	w := cmd.OutOrStdout()
	if len(qs) == 0 {
		fmt.Fprintln(w, render.Muted.Render("no questions"))
		return nil
	}
	for _, q := range qs {
		writeSummary(w, q, chapters)
	}
	return nil
}

func writeSummary(w io.Writer, q model.Question, chapters []model.Chapter) {
	mark := " "
	if q.Bookmarked {
		mark = render.Mark.String()
	}
	ch := fmt.Sprintf("#%d", q.ChapterID)
	if c, ok := chapter.Lookup(chapters, q.ChapterID); ok {
		ch = c.Title
	}
	fmt.Fprintf(w, "%s %s %s\n", mark, render.Heading.Render(q.Title), render.Muted.Render("["+string(q.Kind)+"]"))
	fmt.Fprintf(w, "  %s  %s\n", render.Muted.Render(q.ID), ch)
	if len(q.Tags) > 0 {
		fmt.Fprintf(w, "  %s\n", render.Muted.Render("#"+strings.Join(q.Tags, " #")))
	}
}

// printQuestion writes a single question, rendering the answer in text mode.
func printQuestion(cmd *cobra.Command, q model.Question, chapters []model.Chapter) error {
	if !textFormat() {
		return printJSON(cmd, q)
	}
	w := cmd.OutOrStdout()
	writeSummary(w, q, chapters)
	fmt.Fprintf(w, "  %s\n\n", render.Muted.Render("updated "+q.Updated().Format(time.DateTime)))

	md, err := render.Markdown(q.AnswerBody)
	if err != nil {
		return fmt.Errorf("render answer: %w", err)
	}
	out, err := render.Terminal(md, cfg.Display.Width)
	if err != nil {
		// Fall back to the plain markdown if the renderer is unavailable.
		out = md + "\n"
	}
	fmt.Fprint(w, out)
	return nil
}
