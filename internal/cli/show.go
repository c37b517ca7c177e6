package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a question with its answer",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	q, err := b.Get(args[0])
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	return printQuestion(cmd, q, b.Chapters())
}
