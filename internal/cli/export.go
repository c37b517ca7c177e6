package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/qbank/internal/backup"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file",
		Long:  "Write all questions and chapter renames as a JSON backup. Default file name: sociology_backup_YYYY-MM-DD.json. Use -o - for stdout.",
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Output file, or - for stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = backup.Filename(time.Now())
	}

	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	data, err := b.Export()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if out == "-" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"file":%q,"questions":%d}`+"\n", out, len(b.Questions()))
	return nil
}
