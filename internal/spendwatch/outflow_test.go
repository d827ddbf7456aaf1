package spendwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietdca/alphatrack/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type explorerMock struct {
	mock.Mock
}

func (m *explorerMock) TokenTransfers(ctx context.Context, address string) ([]TokenTransfer, error) {
	args := m.Called(ctx, address)
	if v := args.Get(0); v != nil {
		return v.([]TokenTransfer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *explorerMock) ReceiptConfirmed(ctx context.Context, txHash string) (bool, error) {
	args := m.Called(ctx, txHash)
	return args.Bool(0), args.Error(1)
}

const testWallet = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"

// fixedNow pins "now" to midday so the test day window is stable.
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, explorer Explorer) *service {
	t.Helper()
	require.NoError(t, logger.Init())

	return New(explorer, WithClock(func() time.Time { return fixedNow }))
}

// alphaTransfer builds a transfer that passes every filter: sent by the test
// wallet to the designated contract, in BSC-USD, inside the test day window.
func alphaTransfer(hash string, at time.Time, rawValue string) TokenTransfer {
	return TokenTransfer{
		Hash:         hash,
		From:         testWallet,
		To:           alphaContract,
		TokenSymbol:  stablecoinSymbol,
		Value:        rawValue,
		TokenDecimal: 18,
		Timestamp:    at.Unix(),
	}
}

func TestService_CollectDailyOutflow(t *testing.T) {
	ctx := context.Background()

	t.Run("should return a zero result when the history fetch fails", func(t *testing.T) {
		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return(nil, errors.New("explorer down")).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.True(t, outflow.Total.IsZero())
		assert.Empty(t, outflow.Transactions)
		explorer.AssertExpectations(t)
	})

	t.Run("should return a zero result for an empty history", func(t *testing.T) {
		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{}, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.True(t, outflow.Total.IsZero())
		assert.Empty(t, outflow.Transactions)
	})

	t.Run("should only count transfers inside the utc day window", func(t *testing.T) {
		var (
			inWindow     = alphaTransfer("0xin", fixedNow, "60000000000000000000")
			dayBefore    = alphaTransfer("0xbefore", fixedNow.Add(-24*time.Hour), "60000000000000000000")
			dayAfter     = alphaTransfer("0xafter", fixedNow.Add(24*time.Hour), "60000000000000000000")
			startOfDay   = alphaTransfer("0xstart", time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), "60000000000000000000")
			lastOfSecond = alphaTransfer("0xend", time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC), "60000000000000000000")
		)

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).
			Return([]TokenTransfer{inWindow, dayBefore, dayAfter, startOfDay, lastOfSecond}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xin").Return(true, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xstart").Return(true, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xend").Return(true, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Len(t, outflow.Transactions, 3)
		explorer.AssertExpectations(t)
	})

	t.Run("should ignore transfers not sent by the wallet", func(t *testing.T) {
		incoming := alphaTransfer("0xincoming", fixedNow, "60000000000000000000")
		incoming.From = "0x0000000000000000000000000000000000000009"

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{incoming}, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.True(t, outflow.Total.IsZero())
		assert.Empty(t, outflow.Transactions)
	})

	t.Run("should match the sender case-insensitively", func(t *testing.T) {
		transfer := alphaTransfer("0xcase", fixedNow, "60000000000000000000")
		transfer.From = "0xAB8483F64D9C6D1ECF9B849AE677DD3315835CB2"

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{transfer}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xcase").Return(true, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Len(t, outflow.Transactions, 1)
	})

	t.Run("should ignore other token symbols", func(t *testing.T) {
		transfer := alphaTransfer("0xother", fixedNow, "60000000000000000000")
		transfer.TokenSymbol = "USDT"

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{transfer}, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Empty(t, outflow.Transactions)
	})

	t.Run("should require the value to be strictly above the threshold", func(t *testing.T) {
		var (
			exactly50 = alphaTransfer("0xexact", fixedNow, "50000000000000000000")
			below     = alphaTransfer("0xbelow", fixedNow, "49000000000000000000")
			above     = alphaTransfer("0xabove", fixedNow, "50000000000000000001")
		)

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).
			Return([]TokenTransfer{exactly50, below, above}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xabove").Return(true, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		require.Len(t, outflow.Transactions, 1)
		assert.Equal(t, "0xabove", outflow.Transactions[0].Hash)
		explorer.AssertExpectations(t)
	})

	t.Run("should ignore transfers to the burn address", func(t *testing.T) {
		burn := alphaTransfer("0xburn", fixedNow, "60000000000000000000")
		burn.To = "0x0000000000000000000000000000000000000000"

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{burn}, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Empty(t, outflow.Transactions)
	})

	t.Run("should skip transfers with an unparseable value", func(t *testing.T) {
		broken := alphaTransfer("0xbroken", fixedNow, "not-a-number")

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{broken}, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Empty(t, outflow.Transactions)
	})

	t.Run("should drop transfers that fail receipt confirmation", func(t *testing.T) {
		var (
			confirmed = alphaTransfer("0xok", fixedNow, "60000000000000000000")
			reverted  = alphaTransfer("0xfail", fixedNow, "70000000000000000000")
		)

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).
			Return([]TokenTransfer{confirmed, reverted}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xok").Return(true, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xfail").Return(false, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		require.Len(t, outflow.Transactions, 1)
		assert.Equal(t, "0xok", outflow.Transactions[0].Hash)
		assert.Equal(t, "60.00", outflow.Total.StringFixed(2))
	})

	t.Run("should drop transfers whose receipt lookup errors", func(t *testing.T) {
		transfer := alphaTransfer("0xerr", fixedNow, "60000000000000000000")

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{transfer}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xerr").Return(false, errors.New("timeout")).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Empty(t, outflow.Transactions)
		assert.True(t, outflow.Total.IsZero())
	})

	t.Run("should exclude confirmed transfers outside the designated contract", func(t *testing.T) {
		elsewhere := alphaTransfer("0xelse", fixedNow, "60000000000000000000")
		elsewhere.To = "0x0000000000000000000000000000000000000009"

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{elsewhere}, nil).Once()
		// The transfer qualifies and is confirmed, but the narrower
		// destination filter keeps it out of the total.
		explorer.On("ReceiptConfirmed", ctx, "0xelse").Return(true, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.True(t, outflow.Total.IsZero())
		assert.Empty(t, outflow.Transactions)
		explorer.AssertExpectations(t)
	})

	t.Run("should match the designated contract case-insensitively", func(t *testing.T) {
		transfer := alphaTransfer("0xlower", fixedNow, "60000000000000000000")
		transfer.To = "0xb300000b72deaeb607a12d5f54773d1c19c7028d"

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).Return([]TokenTransfer{transfer}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xlower").Return(true, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		assert.Len(t, outflow.Transactions, 1)
	})

	t.Run("should sum confirmed transfers and preserve descending order", func(t *testing.T) {
		var (
			later   = alphaTransfer("0xlater", fixedNow, "60000000000000000000")
			earlier = alphaTransfer("0xearlier", fixedNow.Add(-2*time.Hour), "51000000000000000000")
		)

		explorer := new(explorerMock)
		explorer.On("TokenTransfers", ctx, testWallet).
			Return([]TokenTransfer{later, earlier}, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xlater").Return(true, nil).Once()
		explorer.On("ReceiptConfirmed", ctx, "0xearlier").Return(true, nil).Once()

		outflow := newTestService(t, explorer).CollectDailyOutflow(ctx, testWallet)

		require.Len(t, outflow.Transactions, 2)
		assert.Equal(t, "111.00", outflow.Total.StringFixed(2))
		assert.Equal(t, "0xlater", outflow.Transactions[0].Hash)
		assert.Equal(t, "0xearlier", outflow.Transactions[1].Hash)
		assert.Equal(t, fixedNow, outflow.Transactions[0].Time)
		assert.Equal(t, testWallet, outflow.Transactions[0].Wallet)
		assert.True(t, outflow.Transactions[0].Value.Equal(decimal.NewFromInt(60)))
	})
}

func TestService_DayWindow(t *testing.T) {
	require.NoError(t, logger.Init())

	svc := New(nil, WithClock(func() time.Time { return fixedNow }))

	start, end := svc.dayWindow()
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC).Unix(), start)
	assert.Equal(t, time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC).Unix(), end)
}
