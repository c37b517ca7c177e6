package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a question (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := b.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
	return nil
}
