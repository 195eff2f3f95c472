package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players by points",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get(fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&limit, "limit", 10, "Number of entries (1-100)")

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show global ledger counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats

			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
