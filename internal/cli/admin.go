package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/qbank/internal/auth"
)

func init() {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Content-management helpers",
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for admin.password_hash",
		Long:  "Print a bcrypt hash for the config file. The password is a positional arg or the first line of stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHashPassword,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
			return nil
		},
	}

	adminCmd.AddCommand(hashCmd, checkCmd)
	RootCmd.AddCommand(adminCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var pw string
	if len(args) > 0 {
		pw = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}

	h, err := auth.HashPassword(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	return nil
}
