package bscscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vietdca/alphatrack/internal/spendwatch"
)

// tokenTransfer is one entry of a tokentx result. BscScan serializes every
// field as a string.
type tokenTransfer struct {
	Hash         string `json:"hash"`
	From         string `json:"from"`
	To           string `json:"to"`
	TokenSymbol  string `json:"tokenSymbol"`
	Value        string `json:"value"`
	TokenDecimal string `json:"tokenDecimal"`
	TimeStamp    string `json:"timeStamp"`
}

// toDomain converts the explorer row into the spendwatch representation,
// parsing the numeric string fields.
func (t tokenTransfer) toDomain() (spendwatch.TokenTransfer, error) {
	decimals, err := strconv.ParseInt(t.TokenDecimal, 10, 32)
	if err != nil {
		return spendwatch.TokenTransfer{}, fmt.Errorf("parsing token decimals of tx %s: %w", t.Hash, err)
	}

	timestamp, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return spendwatch.TokenTransfer{}, fmt.Errorf("parsing timestamp of tx %s: %w", t.Hash, err)
	}

	return spendwatch.TokenTransfer{
		Hash:         t.Hash,
		From:         t.From,
		To:           t.To,
		TokenSymbol:  t.TokenSymbol,
		Value:        t.Value,
		TokenDecimal: int32(decimals),
		Timestamp:    timestamp,
	}, nil
}

// TokenTransfers fetches the full token transfer history for the given
// address, sorted descending by the explorer. A non-success envelope status
// (including "No transactions found") yields an empty list, not an error.
func (c *client) TokenTransfers(ctx context.Context, address string) ([]spendwatch.TokenTransfer, error) {
	params := url.Values{
		"module":     {"account"},
		"action":     {"tokentx"},
		"address":    {address},
		"startblock": {"0"},
		"endblock":   {"99999999"},
		"sort":       {"desc"},
	}

	env, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	if env.Status != "1" {
		return []spendwatch.TokenTransfer{}, nil
	}

	var rows []tokenTransfer
	if err := json.Unmarshal(env.Result, &rows); err != nil {
		return nil, err
	}

	transfers := make([]spendwatch.TokenTransfer, 0, len(rows))
	for _, row := range rows {
		transfer, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, nil
}
