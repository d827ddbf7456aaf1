package bscscan

import (
	"context"
	"encoding/json"
	"net/url"
)

// receiptStatus is the payload of a gettxreceiptstatus result. Status is "1"
// for a successful transaction and "0" otherwise.
type receiptStatus struct {
	Status string `json:"status"`
}

// ReceiptConfirmed looks up the receipt status for the given transaction
// hash and reports whether the explorer marks it as successful.
func (c *client) ReceiptConfirmed(ctx context.Context, txHash string) (bool, error) {
	params := url.Values{
		"module": {"transaction"},
		"action": {"gettxreceiptstatus"},
		"txhash": {txHash},
	}

	env, err := c.get(ctx, params)
	if err != nil {
		return false, err
	}

	var result receiptStatus
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return false, err
	}

	return result.Status == "1", nil
}
