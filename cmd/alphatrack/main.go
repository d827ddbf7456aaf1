package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vietdca/alphatrack/internal/config"
	"github.com/vietdca/alphatrack/internal/handlers/cli"
	"github.com/vietdca/alphatrack/internal/handlers/telegram"
	"github.com/vietdca/alphatrack/internal/infra/blockchain/bsc"
	"github.com/vietdca/alphatrack/internal/infra/explorer/bscscan"
	"github.com/vietdca/alphatrack/internal/infra/storage/jsonfile"
	"github.com/vietdca/alphatrack/internal/pkg/logger"
	"github.com/vietdca/alphatrack/internal/pkg/resilience/retry"
	"github.com/vietdca/alphatrack/internal/pkg/telemetry"
	transporthttp "github.com/vietdca/alphatrack/internal/pkg/transport/http"
	"github.com/vietdca/alphatrack/internal/pkg/validation"
	"github.com/vietdca/alphatrack/internal/spendwatch"
	"github.com/vietdca/alphatrack/internal/subscription"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const serviceName = "alphatrack"

// telegramClientTimeout must exceed the long-polling timeout so idle
// GetUpdates calls are not cut short by the transport.
const telegramClientTimeout = 50 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "initializing telemetry: %v\n", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	validation.Init()

	telegramHTTP := transporthttp.NewClient(
		transporthttp.WithTimeout(telegramClientTimeout),
		transporthttp.WithProxyURL(cfg.TelegramProxyURL),
	).StandardClient()

	api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramBotToken, tgbotapi.APIEndpoint, telegramHTTP)
	if err != nil {
		logger.Fatal(ctx, "creating telegram client failed", "error", err)
	}

	store := jsonfile.New(cfg.DataFilePath)
	subs := subscription.New(store)
	subs.Load(ctx)

	if cfg.BNBChainRPCURL != "" {
		chain := bsc.NewClient(cfg.BNBChainRPCURL, retry.New())
		if chainID, err := chain.VerifyConnectivity(ctx); err != nil {
			logger.Warn(ctx, "bnb chain rpc endpoint unreachable", "error", err)
		} else {
			logger.Info(ctx, "connected to bnb chain rpc", "chain.id", chainID.String())
		}
	}

	explorerHTTP := transporthttp.NewClient(
		transporthttp.WithTimeout(cfg.ExplorerTimeout),
	).StandardClient()

	explorer := bscscan.NewClient(explorerHTTP, cfg.BscScanAPIURL, cfg.BscScanAPIKey)
	spend := spendwatch.New(explorer)
	bot := telegram.New(api, subs, spend)

	if err := cli.Run(ctx, bot, subs); err != nil {
		logger.Fatal(ctx, "running alphatrack failed", "error", err)
	}
}
