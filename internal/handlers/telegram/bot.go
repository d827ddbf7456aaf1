// Package telegram implements the bot's command dispatcher on top of the
// Telegram Bot API, using long polling. Each inbound command is handled
// independently; there is no session state beyond the subscription store.
package telegram

import (
	"context"

	"github.com/vietdca/alphatrack/internal/pkg/logger"
	"github.com/vietdca/alphatrack/internal/spendwatch"
	"github.com/vietdca/alphatrack/internal/subscription"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// defaultUpdateTimeout is the long-polling timeout, in seconds.
const defaultUpdateTimeout = 30

// botAPI is the slice of the Telegram client the dispatcher depends on.
// *tgbotapi.BotAPI satisfies it.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot routes inbound Telegram commands to the subscription store and the
// spend aggregator, replying with one formatted message per handled command.
type Bot struct {
	api           botAPI
	subscriptions subscription.Service
	spend         spendwatch.Service
	updateTimeout int
}

type config struct {
	updateTimeout int
}

// Option configures optional Bot behavior.
type Option func(*config)

// WithUpdateTimeout overrides the long-polling timeout in seconds.
func WithUpdateTimeout(seconds int) Option {
	return func(c *config) {
		c.updateTimeout = seconds
	}
}

// New creates a Bot wired to the given Telegram client and services.
func New(api botAPI, subscriptions subscription.Service, spend spendwatch.Service, opts ...Option) *Bot {
	cfg := config{
		updateTimeout: defaultUpdateTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Bot{
		api:           api,
		subscriptions: subscriptions,
		spend:         spend,
		updateTimeout: cfg.updateTimeout,
	}
}

// Run consumes the update stream until the context is canceled or the
// stream is closed. Updates are processed one at a time, in order.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.updateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)

	logger.Info(ctx, "bot is running")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches a single update. Non-command messages and unknown
// commands produce no reply.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	var (
		updateID = uuid.NewString()
		chatID   = msg.Chat.ID
		command  = msg.Command()
	)

	logger.Debug(ctx, "handling command",
		"update.id", updateID,
		"chat.id", chatID,
		"command", command,
	)

	var reply string
	switch command {
	case "start":
		reply = b.handleStart(ctx, chatID)
	case "track":
		reply = b.handleTrack(ctx, msg)
	case "list":
		reply = b.handleList(ctx, chatID)
	case "stats":
		reply = b.handleStats(ctx, chatID)
	case "remove":
		reply = b.handleRemove(ctx, msg)
	case "clear":
		reply = b.handleClear(ctx, chatID)
	default:
		return
	}

	if reply == "" {
		return
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, reply)); err != nil {
		logger.Error(ctx, "sending reply failed",
			"update.id", updateID,
			"chat.id", chatID,
			"command", command,
			"error", err,
		)
	}
}
