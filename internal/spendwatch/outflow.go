package spendwatch

import (
	"context"
	"strings"
	"time"

	"github.com/vietdca/alphatrack/internal/pkg/logger"

	"github.com/shopspring/decimal"
)

// dayWindow returns the inclusive unix-second bounds of the current UTC
// calendar day.
func (s *service) dayWindow() (int64, int64) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)

	return start.Unix(), end.Unix()
}

// qualifies applies the candidate filter: the transfer must fall inside the
// day window, originate from the tracked wallet, move the designated
// stablecoin, exceed the minimum value, and not target the burn address.
func qualifies(ctx context.Context, t TokenTransfer, wallet string, windowStart, windowEnd int64) bool {
	if t.Timestamp < windowStart || t.Timestamp > windowEnd {
		return false
	}

	if !strings.EqualFold(t.From, wallet) {
		return false
	}

	if t.TokenSymbol != stablecoinSymbol {
		return false
	}

	value, err := t.decodedValue()
	if err != nil {
		logger.Warn(ctx, "skipping transfer with unparseable value",
			"transfer.hash", t.Hash,
			"transfer.value", t.Value,
			"error", err,
		)
		return false
	}

	if !value.GreaterThan(minTransferValue) {
		return false
	}

	return !strings.EqualFold(t.To, burnAddress)
}

// collectConfirmedTransfers fetches the wallet's transfer history and keeps
// only qualifying transfers whose receipt lookup reports success. Receipt
// checks run sequentially, one round-trip per candidate.
func (s *service) collectConfirmedTransfers(ctx context.Context, wallet string) []TokenTransfer {
	transfers, err := s.explorer.TokenTransfers(ctx, wallet)
	if err != nil {
		logger.Error(ctx, "fetching token transfer history failed",
			"wallet", wallet,
			"error", err,
		)
		return nil
	}

	windowStart, windowEnd := s.dayWindow()

	confirmed := make([]TokenTransfer, 0, len(transfers))
	for _, t := range transfers {
		if !qualifies(ctx, t, wallet, windowStart, windowEnd) {
			continue
		}

		ok, err := s.explorer.ReceiptConfirmed(ctx, t.Hash)
		if err != nil {
			logger.Warn(ctx, "receipt status lookup failed, dropping transfer",
				"wallet", wallet,
				"transfer.hash", t.Hash,
				"error", err,
			)
			continue
		}
		if !ok {
			continue
		}

		confirmed = append(confirmed, t)
	}

	return confirmed
}

// CollectDailyOutflow computes the wallet's confirmed outgoing stablecoin
// spend for the current UTC day. The resulting transaction list preserves the
// explorer's descending time order.
func (s *service) CollectDailyOutflow(ctx context.Context, wallet string) DailyOutflow {
	confirmed := s.collectConfirmedTransfers(ctx, wallet)

	// TODO: this second pass restates parts of the candidate filter with a
	// narrower destination match; check with the bot's owner whether spends
	// outside the Alpha contract were ever meant to count before merging
	// the two passes.
	total := decimal.Zero
	records := make([]TransactionRecord, 0, len(confirmed))
	for _, t := range confirmed {
		if !strings.EqualFold(t.To, alphaContract) {
			continue
		}

		value, err := t.decodedValue()
		if err != nil || !value.IsPositive() {
			continue
		}

		total = total.Add(value)
		records = append(records, TransactionRecord{
			Time:   time.Unix(t.Timestamp, 0).UTC(),
			Value:  value,
			Hash:   t.Hash,
			Wallet: wallet,
		})
	}

	return DailyOutflow{
		Total:        total,
		Transactions: records,
	}
}
