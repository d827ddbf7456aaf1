// Package bscscan implements the spendwatch.Explorer interface on top of the
// BscScan HTTP API. All operations are read-only GET requests against a
// single endpoint, authenticated by API key.
package bscscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vietdca/alphatrack/internal/spendwatch"
)

// ErrUnexpectedStatus indicates the explorer answered with a non-200 HTTP
// status code.
var ErrUnexpectedStatus = errors.New("explorer returned unexpected http status")

// envelope is the standard BscScan response wrapper. Status is "1" on
// success; Result carries the operation-specific payload.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// client talks to the BscScan API. It satisfies spendwatch.Explorer.
type client struct {
	httpClient *http.Client // transport, including timeout configuration
	baseURL    string       // explorer endpoint, e.g. https://api.bscscan.com/api
	apiKey     string
}

var _ spendwatch.Explorer = (*client)(nil)

// NewClient constructs a BscScan client using the given HTTP client, base
// endpoint and API key.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *client {
	return &client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// get issues one GET request with the given query parameters plus the API
// key, and decodes the standard response envelope.
func (c *client) get(ctx context.Context, params url.Values) (envelope, error) {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return envelope{}, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return envelope{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	var data envelope
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return envelope{}, err
	}

	return data, nil
}
