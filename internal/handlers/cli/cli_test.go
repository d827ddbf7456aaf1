package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/vietdca/alphatrack/internal/infra/storage/jsonfile"
	"github.com/vietdca/alphatrack/internal/pkg/logger"
	"github.com/vietdca/alphatrack/internal/pkg/validation"
	"github.com/vietdca/alphatrack/internal/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const testWallet = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"

func newTestApp(t *testing.T) (*cli.Command, subscription.Service, *bytes.Buffer) {
	t.Helper()
	validation.Init()
	require.NoError(t, logger.Init())

	svc := subscription.New(jsonfile.New(filepath.Join(t.TempDir(), "tracked_wallets.json")))

	var out bytes.Buffer
	listCmd := listWalletsCommand(svc)
	listCmd.Writer = &out

	app := &cli.Command{
		Name:   "alphatrack",
		Writer: &out,
		Commands: []*cli.Command{
			trackWalletCommand(svc),
			untrackWalletCommand(svc),
			listCmd,
		},
	}

	return app, svc, &out
}

func TestTrackWalletCommand(t *testing.T) {
	t.Run("should add the wallet to the chat's tracking list", func(t *testing.T) {
		ctx := context.Background()
		app, svc, _ := newTestApp(t)

		err := app.Run(ctx, []string{"alphatrack", "track", "--chat", "42", "--address", testWallet})
		require.NoError(t, err)

		assert.Equal(t, []string{testWallet}, svc.List(ctx, 42))
	})

	t.Run("should fail on a non-numeric chat id", func(t *testing.T) {
		app, svc, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"alphatrack", "track", "--chat", "abc", "--address", testWallet})
		require.Error(t, err)

		assert.Empty(t, svc.List(context.Background(), 42))
	})

	t.Run("should surface an already tracked wallet", func(t *testing.T) {
		ctx := context.Background()
		app, _, _ := newTestApp(t)

		require.NoError(t, app.Run(ctx, []string{"alphatrack", "track", "--chat", "42", "--address", testWallet}))

		err := app.Run(ctx, []string{"alphatrack", "track", "--chat", "42", "--address", testWallet})
		assert.ErrorIs(t, err, subscription.ErrAlreadyTracked)
	})
}

func TestUntrackWalletCommand(t *testing.T) {
	t.Run("should remove the wallet from the chat's tracking list", func(t *testing.T) {
		ctx := context.Background()
		app, svc, _ := newTestApp(t)

		require.NoError(t, app.Run(ctx, []string{"alphatrack", "track", "--chat", "42", "--address", testWallet}))
		require.NoError(t, app.Run(ctx, []string{"alphatrack", "untrack", "--chat", "42", "--address", testWallet}))

		assert.Empty(t, svc.List(ctx, 42))
	})

	t.Run("should surface a wallet that was never tracked", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"alphatrack", "untrack", "--chat", "42", "--address", testWallet})
		assert.ErrorIs(t, err, subscription.ErrNotTracked)
	})
}

func TestListWalletsCommand(t *testing.T) {
	t.Run("should print the tracked wallets in insertion order", func(t *testing.T) {
		ctx := context.Background()
		app, _, out := newTestApp(t)

		require.NoError(t, app.Run(ctx, []string{"alphatrack", "track", "--chat", "42", "--address", testWallet}))
		require.NoError(t, app.Run(ctx, []string{"alphatrack", "track", "--chat", "42", "--address", "0x0000000000000000000000000000000000000001"}))

		out.Reset()
		require.NoError(t, app.Run(ctx, []string{"alphatrack", "list", "--chat", "42"}))

		assert.Equal(t, "1. "+testWallet+"\n2. 0x0000000000000000000000000000000000000001\n", out.String())
	})

	t.Run("should print nothing for an untracked chat", func(t *testing.T) {
		app, _, out := newTestApp(t)

		require.NoError(t, app.Run(context.Background(), []string{"alphatrack", "list", "--chat", "42"}))
		assert.Empty(t, out.String())
	})
}
