package spendwatch

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenTransfer is a single BEP-20 transfer event as reported by the block
// explorer. Value carries the raw integer amount; the effective amount is
// Value scaled down by TokenDecimal.
type TokenTransfer struct {
	Hash         string // transaction hash
	From         string // sender address
	To           string // recipient address
	TokenSymbol  string // token ticker symbol (e.g. "BSC-USD")
	Value        string // raw transfer amount, unscaled
	TokenDecimal int32  // number of decimals for the token
	Timestamp    int64  // block timestamp, unix seconds
}

// decodedValue returns the transfer amount scaled by the token's decimals.
func (t TokenTransfer) decodedValue() (decimal.Decimal, error) {
	raw, err := decimal.NewFromString(t.Value)
	if err != nil {
		return decimal.Zero, err
	}

	return raw.Shift(-t.TokenDecimal), nil
}

// TransactionRecord is a confirmed outgoing stablecoin transfer attributed to
// a tracked wallet. Records exist only for the duration of a stats request.
type TransactionRecord struct {
	Time   time.Time       // block time, UTC
	Value  decimal.Decimal // transfer amount in stablecoin units
	Hash   string          // transaction hash
	Wallet string          // tracked wallet the transfer originated from
}

// DailyOutflow is the aggregate of a wallet's confirmed same-day outgoing
// stablecoin transfers toward the designated contract.
type DailyOutflow struct {
	Total        decimal.Decimal
	Transactions []TransactionRecord
}
