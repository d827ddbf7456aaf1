package subscription

import (
	"context"
	"errors"
)

// UserProfile is the last-seen profile of the person driving a chat. It is
// refreshed on every successful track operation.
type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// Entry is the persisted form of one chat's subscription: the tracked wallet
// addresses in insertion order plus the last-seen user profile.
type Entry struct {
	Wallets []string    `json:"wallets"`
	User    UserProfile `json:"user"`
}

// Snapshotter mirrors the full chat-to-subscription mapping to durable
// storage. The whole mapping is written on every call; there is no partial
// update.
type Snapshotter interface {
	// Save overwrites the stored snapshot with the given mapping.
	Save(ctx context.Context, data map[int64]Entry) error

	// Load reads the stored snapshot. A missing snapshot yields an empty
	// mapping, not an error.
	Load(ctx context.Context) (map[int64]Entry, error)
}

var (
	// ErrAlreadyTracked indicates the wallet is already present in the
	// chat's tracked set under case-insensitive comparison.
	ErrAlreadyTracked = errors.New("wallet already tracked")

	// ErrNotTracked indicates the wallet is not present in the chat's
	// tracked set.
	ErrNotTracked = errors.New("wallet not tracked")
)
