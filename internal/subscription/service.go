package subscription

import (
	"context"
	"strings"
	"sync"

	"github.com/vietdca/alphatrack/internal/pkg/logger"
	"github.com/vietdca/alphatrack/internal/pkg/types"
	"github.com/vietdca/alphatrack/internal/pkg/validation"
)

// Service manages per-chat wallet subscriptions. All mutations are mirrored
// synchronously to the configured Snapshotter; mirror failures are logged
// and swallowed so a broken disk never takes a chat down.
type Service interface {
	// Track adds a wallet to the chat's tracked set and refreshes the stored
	// user profile. It returns ErrAlreadyTracked when the address is already
	// present under case-insensitive comparison.
	Track(ctx context.Context, chatID int64, address string, user UserProfile) error

	// Untrack removes a wallet from the chat's tracked set. It returns
	// ErrNotTracked when the address is absent.
	Untrack(ctx context.Context, chatID int64, address string) error

	// Clear removes the chat's subscription entirely. The snapshot is
	// rewritten even when the chat had no subscription.
	Clear(ctx context.Context, chatID int64) error

	// List returns the chat's tracked wallets in insertion order. An
	// untracked chat yields an empty list.
	List(ctx context.Context, chatID int64) []string

	// Load replaces the in-memory state with the stored snapshot. Load
	// failures are logged and leave the service empty.
	Load(ctx context.Context)
}

// chatEntry holds one chat's live state: the ordered wallet set and the
// last-seen user profile.
type chatEntry struct {
	wallets *types.OrderedSet[string]
	user    UserProfile
}

func newChatEntry() *chatEntry {
	return &chatEntry{
		wallets: types.NewOrderedSet(strings.ToLower),
	}
}

type service struct {
	mu        sync.Mutex
	chats     map[int64]*chatEntry
	snapshots Snapshotter
}

var _ Service = (*service)(nil)

// New creates a subscription service mirrored to the given Snapshotter.
func New(snapshots Snapshotter) *service {
	return &service{
		chats:     make(map[int64]*chatEntry),
		snapshots: snapshots,
	}
}

// trackRequest carries the validated input of a Track call.
type trackRequest struct {
	ChatID  int64  `validate:"required"`
	Address string `validate:"required"`
}

func (s *service) Track(ctx context.Context, chatID int64, address string, user UserProfile) error {
	req := trackRequest{ChatID: chatID, Address: address}
	if err := validation.Validate(req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.chats[chatID]
	if !ok {
		entry = newChatEntry()
		s.chats[chatID] = entry
	}

	if !entry.wallets.Add(address) {
		return ErrAlreadyTracked
	}
	entry.user = user

	s.persistLocked(ctx)
	return nil
}

func (s *service) Untrack(ctx context.Context, chatID int64, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.chats[chatID]
	if !ok || !entry.wallets.Delete(address) {
		return ErrNotTracked
	}

	s.persistLocked(ctx)
	return nil
}

func (s *service) Clear(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chats, chatID)

	s.persistLocked(ctx)
	return nil
}

func (s *service) List(ctx context.Context, chatID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.chats[chatID]
	if !ok {
		return []string{}
	}

	return entry.wallets.Values()
}

func (s *service) Load(ctx context.Context) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		logger.Error(ctx, "loading subscription snapshot failed, starting empty",
			"error", err,
		)
		return
	}

	chats := make(map[int64]*chatEntry, len(data))
	for chatID, stored := range data {
		entry := newChatEntry()
		for _, wallet := range stored.Wallets {
			entry.wallets.Add(wallet)
		}
		entry.user = stored.User
		chats[chatID] = entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = chats
}

// persistLocked mirrors the in-memory state through the Snapshotter. The
// caller must hold s.mu. Save failures are logged; the mutation that
// triggered the save stays applied in memory.
func (s *service) persistLocked(ctx context.Context) {
	data := make(map[int64]Entry, len(s.chats))
	for chatID, entry := range s.chats {
		data[chatID] = Entry{
			Wallets: entry.wallets.Values(),
			User:    entry.user,
		}
	}

	if err := s.snapshots.Save(ctx, data); err != nil {
		logger.Error(ctx, "persisting subscription snapshot failed",
			"chats", len(data),
			"error", err,
		)
	}
}
