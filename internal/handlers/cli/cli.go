package cli

import (
	"context"
	"errors"
	"os"

	"github.com/vietdca/alphatrack/internal/handlers/telegram"
	"github.com/vietdca/alphatrack/internal/subscription"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the alphatrack CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Runs the Telegram bot until interrupted.
//   - `track`: Adds a wallet to a chat's tracking list without the bot.
//   - `untrack`: Removes a wallet from a chat's tracking list.
//   - `list`: Prints a chat's tracked wallets.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - bot: The Telegram dispatcher run by the start command.
//   - subs: The subscription service used by the wallet commands.
func Run(ctx context.Context, bot *telegram.Bot, subs subscription.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "alphatrack",
		Description:           "Telegram bot that tracks same-day BSC-USD spend of BNB Chain wallets.",
		Usage:                 "alphatrack [command] [flags]",
		Commands: []*cli.Command{
			startBotCommand(bot),
			trackWalletCommand(subs),
			untrackWalletCommand(subs),
			listWalletsCommand(subs),
		},
	}

	return app.Run(ctx, os.Args)
}

// startBotCommand returns the CLI command that runs the Telegram bot until
// the process is interrupted.
func startBotCommand(bot *telegram.Bot) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Start the Telegram bot and process commands until interrupted.",
		Usage:       "Runs the long-polling update loop.",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
