package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game recording and lookup commands",
	}

	cmd.AddCommand(newGameRecordCmd())
	cmd.AddCommand(newGameGetCmd())

	return cmd
}

func newGameRecordCmd() *cobra.Command {
	var (
		identity   string
		won        bool
		difficulty string
		timeSpent  uint64
		daily      bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a completed game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if identity == "" {
				return fmt.Errorf("--identity is required")
			}

			req := map[string]any{
				"identity":        identity,
				"won":             won,
				"difficulty":      difficulty,
				"time_spent":      timeSpent,
				"daily_challenge": daily,
			}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "", "Player identity (required)")
	cmd.Flags().BoolVar(&won, "won", false, "Whether the game was won")
	cmd.Flags().StringVar(&difficulty, "difficulty", "easy", "Difficulty: easy, medium, hard")
	cmd.Flags().Uint64Var(&timeSpent, "time", 0, "Completion time in seconds")
	cmd.Flags().BoolVar(&daily, "daily", false, "Record as a daily challenge")
	_ = cmd.MarkFlagRequired("identity")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show a recorded game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
