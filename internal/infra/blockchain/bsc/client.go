// Package bsc provides BNB Chain helpers: wallet address format validation
// and a startup connectivity probe against the configured RPC endpoint.
package bsc

import (
	"context"
	"math/big"

	"github.com/vietdca/alphatrack/internal/pkg/resilience/retry"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ValidAddress reports whether the given string is a well-formed BNB Chain
// (EVM) address. This is a pure format check; it never touches the network.
func ValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// Client probes the configured RPC endpoint. The endpoint is only used as a
// sanity check at startup; all wallet data comes from the explorer API.
type Client struct {
	rpcURL  string
	retrier retry.Retry
}

// NewClient creates a Client for the given RPC endpoint, retrying dial
// failures with the provided retrier.
func NewClient(rpcURL string, retrier retry.Retry) *Client {
	return &Client{
		rpcURL:  rpcURL,
		retrier: retrier,
	}
}

// VerifyConnectivity dials the RPC endpoint and fetches the chain id,
// retrying transient failures. It returns the chain id on success.
func (c *Client) VerifyConnectivity(ctx context.Context) (*big.Int, error) {
	var chainID *big.Int

	err := c.retrier.Execute(ctx, func() error {
		conn, err := ethclient.DialContext(ctx, c.rpcURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		id, err := conn.ChainID(ctx)
		if err != nil {
			return err
		}

		chainID = id
		return nil
	})

	return chainID, err
}
