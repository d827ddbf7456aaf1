package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vietdca/alphatrack/internal/subscription"

	"github.com/urfave/cli/v3"
)

// chatIDFlag parses the required --chat flag.
func chatIDFlag(c *cli.Command) (int64, error) {
	return strconv.ParseInt(c.String("chat"), 10, 64)
}

// trackWalletCommand returns a CLI command that adds a wallet to a chat's
// tracking list directly, without going through Telegram.
//
// Usage example:
//
//	alphatrack track --chat 123456 --address 0xABC123...
func trackWalletCommand(subs subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "track",
		Description: "Add a wallet to a chat's tracking list.",
		Usage:       "Adds a wallet address for tracking. Must provide both chat and address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "chat",
				Usage:    "Numeric chat identifier",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to start tracking",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			chatID, err := chatIDFlag(c)
			if err != nil {
				return err
			}

			profile := subscription.UserProfile{Username: "cli"}
			return subs.Track(ctx, chatID, c.String("address"), profile)
		},
	}
}

// untrackWalletCommand returns a CLI command that removes a wallet from a
// chat's tracking list.
//
// Usage example:
//
//	alphatrack untrack --chat 123456 --address 0xABC123...
func untrackWalletCommand(subs subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "untrack",
		Description: "Remove a wallet from a chat's tracking list.",
		Usage:       "Stops tracking a wallet address. Must provide both chat and address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "chat",
				Usage:    "Numeric chat identifier",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to stop tracking",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			chatID, err := chatIDFlag(c)
			if err != nil {
				return err
			}

			return subs.Untrack(ctx, chatID, c.String("address"))
		},
	}
}

// listWalletsCommand returns a CLI command that prints a chat's tracked
// wallets in insertion order.
func listWalletsCommand(subs subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Description: "Print a chat's tracked wallets.",
		Usage:       "Lists tracked wallet addresses for a chat.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "chat",
				Usage:    "Numeric chat identifier",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			chatID, err := chatIDFlag(c)
			if err != nil {
				return err
			}

			for i, wallet := range subs.List(ctx, chatID) {
				fmt.Fprintf(c.Writer, "%d. %s\n", i+1, wallet)
			}
			return nil
		},
	}
}
