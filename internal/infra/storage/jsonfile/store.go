// Package jsonfile persists subscription snapshots as a single
// pretty-printed JSON file. Every save overwrites the whole file; there is
// no versioning and no partial update.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vietdca/alphatrack/internal/subscription"
)

// Store reads and writes the tracked-wallets file. The on-disk schema maps
// the chat id (as a decimal string) to its wallets and last-seen user.
type Store struct {
	path string
}

var _ subscription.Snapshotter = (*Store)(nil)

// New creates a Store backed by the file at the given path. The file and its
// parent directory are created on first save.
func New(path string) *Store {
	return &Store{
		path: path,
	}
}

// Save overwrites the snapshot file with the given mapping, creating the
// parent directory if needed.
func (s *Store) Save(ctx context.Context, data map[int64]subscription.Entry) error {
	onDisk := make(map[string]subscription.Entry, len(data))
	for chatID, entry := range data {
		onDisk[strconv.FormatInt(chatID, 10)] = entry
	}

	encoded, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(s.path, encoded, 0o644)
}

// Load reads the snapshot file. A missing file yields an empty mapping.
func (s *Store) Load(ctx context.Context) (map[int64]subscription.Entry, error) {
	encoded, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[int64]subscription.Entry{}, nil
		}
		return nil, err
	}

	var onDisk map[string]subscription.Entry
	if err := json.Unmarshal(encoded, &onDisk); err != nil {
		return nil, err
	}

	data := make(map[int64]subscription.Entry, len(onDisk))
	for rawChatID, entry := range onDisk {
		chatID, err := strconv.ParseInt(rawChatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q in snapshot: %w", rawChatID, err)
		}
		data[chatID] = entry
	}

	return data, nil
}
