package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/qbank/internal/backup"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Restore a backup file (admin)",
		Long:  "Replace all questions and chapter renames with the content of a backup. Also accepts the legacy bare-array format. Use - for stdin. A backup with unreadable entries is refused unless --force is given.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	cmd.Flags().Bool("force", false, "Import the readable entries even when some are skipped")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open backup: %w", err)
		}
		defer f.Close()
		r = f
	}

	// Parse before touching the store so a bad file changes nothing.
	bk, err := backup.ImportReader(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := bk.Complete(); err != nil {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return fmt.Errorf("import: %w; nothing changed (use --force to import the rest)", err)
		}
		logger.Warn("skipped unreadable backup entries", zap.Int("skipped", bk.Skipped))
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	n, err := b.Replace(cmd.Context(), bk)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d,"skipped":%d,"chapters":%d,"legacy":%t}`+"\n",
		n, bk.Skipped, len(bk.Chapters), bk.Legacy)
	return nil
}
