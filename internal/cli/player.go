package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerGamesCmd())
	cmd.AddCommand(newPlayerRankCmd())
	cmd.AddCommand(newPlayerDailyCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register <identity>",
		Short: "Register a player or update their display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{
				"identity":     args[0],
				"display_name": name,
			}
			var result User

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <identity>",
		Short: "Show a player's profile and stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/api/v1/players/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerGamesCmd() *cobra.Command {
	var offset, limit uint64

	cmd := &cobra.Command{
		Use:   "games <identity>",
		Short: "List a player's game history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/players/%s/games?offset=%d&limit=%d",
				url.PathEscape(args[0]), offset, limit)

			var result GameList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&offset, "offset", 0, "Number of games to skip")
	cmd.Flags().Uint64Var(&limit, "limit", 10, "Maximum games to return")

	return cmd
}

func newPlayerRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <identity>",
		Short: "Show a player's leaderboard rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Rank

			if err := client.Get("/api/v1/players/"+url.PathEscape(args[0])+"/rank", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily <identity> <date-key>",
		Short: "Check whether a player completed a daily challenge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/players/%s/daily/%s",
				url.PathEscape(args[0]), url.PathEscape(args[1]))

			var result DailyStatus
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
