package telegram

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vietdca/alphatrack/internal/infra/blockchain/bsc"
	"github.com/vietdca/alphatrack/internal/pkg/logger"
	"github.com/vietdca/alphatrack/internal/spendwatch"
	"github.com/vietdca/alphatrack/internal/subscription"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

const (
	invalidAddressReply = "❌ Invalid wallet address. Please provide a valid BNB Chain address."
	alreadyTrackedReply = "⚠️ This wallet is already being tracked."
	notTrackedReply     = "⚠️ This wallet is not in the tracking list."
	noWalletsReply      = "No wallets tracked yet. Use /track <wallet_address> to add one."
	clearedReply        = "Removed all wallets from the tracking list."
)

// profileFrom extracts the sender's profile, falling back to "unknown" for
// missing optional fields.
func profileFrom(msg *tgbotapi.Message) subscription.UserProfile {
	profile := subscription.UserProfile{
		Username:  "unknown",
		FirstName: "unknown",
	}

	if msg.From == nil {
		return profile
	}

	profile.ID = msg.From.ID
	if msg.From.UserName != "" {
		profile.Username = msg.From.UserName
	}
	if msg.From.FirstName != "" {
		profile.FirstName = msg.From.FirstName
	}

	return profile
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) string {
	wallets := b.subscriptions.List(ctx, chatID)

	var sb strings.Builder
	sb.WriteString("Welcome to the Binance Alpha volume tracker!\n\n")
	sb.WriteString("Commands:\n")
	sb.WriteString("/track <wallet_address> - Add a wallet to the tracking list\n")
	sb.WriteString("/list - Show tracked wallets\n")
	sb.WriteString("/stats - Show today's BSC-USD spend for all tracked wallets\n")
	sb.WriteString("/remove <wallet_address> - Remove a wallet from the tracking list\n")
	sb.WriteString("/clear - Remove all wallets from the tracking list\n\n")

	if len(wallets) > 0 {
		fmt.Fprintf(&sb, "You are tracking %d wallet(s).\n", len(wallets))
		sb.WriteString("Use /list to see them.")
	} else {
		sb.WriteString("You are not tracking any wallets yet.\n")
		sb.WriteString("Use /track <wallet_address> to add one.")
	}

	return sb.String()
}

func (b *Bot) handleTrack(ctx context.Context, msg *tgbotapi.Message) string {
	address := strings.TrimSpace(msg.CommandArguments())
	if address == "" {
		return ""
	}

	if !bsc.ValidAddress(address) {
		return invalidAddressReply
	}

	err := b.subscriptions.Track(ctx, msg.Chat.ID, address, profileFrom(msg))
	switch {
	case errors.Is(err, subscription.ErrAlreadyTracked):
		return alreadyTrackedReply
	case err != nil:
		logger.Error(ctx, "tracking wallet failed",
			"chat.id", msg.Chat.ID,
			"wallet", address,
			"error", err,
		)
		return ""
	}

	return fmt.Sprintf(
		"✅ Wallet added to the tracking list:\n🔹 %s\n\nUse /stats to see today's BSC-USD spend.",
		address,
	)
}

func (b *Bot) handleList(ctx context.Context, chatID int64) string {
	wallets := b.subscriptions.List(ctx, chatID)
	if len(wallets) == 0 {
		return noWalletsReply
	}

	var sb strings.Builder
	sb.WriteString("Tracked wallets:\n\n")
	for i, wallet := range wallets {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, wallet)
	}

	return sb.String()
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) string {
	wallets := b.subscriptions.List(ctx, chatID)
	if len(wallets) == 0 {
		return noWalletsReply
	}

	// Wallets are aggregated strictly one after another; latency grows
	// linearly with wallet count and qualifying transaction count.
	total := decimal.Zero
	var records []spendwatch.TransactionRecord
	for _, wallet := range wallets {
		outflow := b.spend.CollectDailyOutflow(ctx, wallet)
		total = total.Add(outflow.Total)
		records = append(records, outflow.Transactions...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})

	return formatStatsMessage(wallets, total, records)
}

func (b *Bot) handleRemove(ctx context.Context, msg *tgbotapi.Message) string {
	address := strings.TrimSpace(msg.CommandArguments())
	if address == "" {
		return ""
	}

	err := b.subscriptions.Untrack(ctx, msg.Chat.ID, address)
	switch {
	case errors.Is(err, subscription.ErrNotTracked):
		return notTrackedReply
	case err != nil:
		logger.Error(ctx, "untracking wallet failed",
			"chat.id", msg.Chat.ID,
			"wallet", address,
			"error", err,
		)
		return ""
	}

	return fmt.Sprintf("✅ Wallet removed from the tracking list:\n🔹 %s", address)
}

func (b *Bot) handleClear(ctx context.Context, chatID int64) string {
	if err := b.subscriptions.Clear(ctx, chatID); err != nil {
		logger.Error(ctx, "clearing wallets failed",
			"chat.id", chatID,
			"error", err,
		)
		return ""
	}

	return clearedReply
}
