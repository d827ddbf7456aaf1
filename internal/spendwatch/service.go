package spendwatch

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Explorer defines the read-only block explorer queries the aggregator
// depends on.
type Explorer interface {
	// TokenTransfers returns the full token transfer history for the given
	// address, sorted by the explorer in descending block order.
	TokenTransfers(ctx context.Context, address string) ([]TokenTransfer, error)

	// ReceiptConfirmed reports whether the transaction receipt for the given
	// hash has a success status.
	ReceiptConfirmed(ctx context.Context, txHash string) (bool, error)
}

// Service aggregates a wallet's same-day outgoing stablecoin spend.
type Service interface {
	// CollectDailyOutflow computes the wallet's confirmed outgoing stablecoin
	// transfers for the current UTC day. Explorer failures degrade to an
	// empty result; they are logged, never returned.
	CollectDailyOutflow(ctx context.Context, wallet string) DailyOutflow
}

const (
	// stablecoinSymbol is the only token ticker counted toward the outflow.
	stablecoinSymbol = "BSC-USD"

	// alphaContract is the designated destination contract whose inbound
	// transfers count as Binance Alpha buy volume.
	alphaContract = "0xb300000b72DEAEb607a12d5f54773D1C19c7028d"

	// burnAddress transfers are never counted.
	burnAddress = "0x0000000000000000000000000000000000000000"
)

// minTransferValue is the exclusive lower bound for a qualifying transfer,
// in stablecoin units.
var minTransferValue = decimal.NewFromInt(50)

type service struct {
	explorer Explorer
	now      func() time.Time
}

var _ Service = (*service)(nil)

type config struct {
	now func() time.Time
}

// Option configures optional service behavior.
type Option func(*config)

// WithClock overrides the time source used to compute the current UTC day
// window. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New creates a spendwatch service backed by the given explorer.
func New(explorer Explorer, opts ...Option) *service {
	cfg := config{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		explorer: explorer,
		now:      cfg.now,
	}
}
