package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random question",
		RunE:  runRandom,
	}

	RootCmd.AddCommand(cmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	b, s, err := openBank(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	q, err := b.Random(rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return fmt.Errorf("random: %w", err)
	}
	return printQuestion(cmd, q, b.Chapters())
}
