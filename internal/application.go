package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/amoeba-bot/internal/agent"
	"github.com/rocketscienceinc/amoeba-bot/internal/config"
	"github.com/rocketscienceinc/amoeba-bot/internal/protocol"
	"github.com/rocketscienceinc/amoeba-bot/internal/repository"
	"github.com/rocketscienceinc/amoeba-bot/internal/repository/storage"
	"github.com/rocketscienceinc/amoeba-bot/internal/transport/websocket"
	"github.com/rocketscienceinc/amoeba-bot/internal/usecase"
	"github.com/rocketscienceinc/amoeba-bot/transport/rest"
)

// RunApp - joins the match and plays it to the end.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	moveAgent, err := agent.DefaultRegistry().New(conf.Agent)
	if err != nil {
		return fmt.Errorf("could not create agent: %w", err)
	}

	url, err := conf.MatchURL()
	if err != nil {
		return fmt.Errorf("could not build match url: %w", err)
	}

	gameID := conf.GameID()

	eventRepo, closeFeed, err := newEventRepository(ctx, log, conf, gameID)
	if err != nil {
		return err
	}
	defer closeFeed()

	handler := protocol.NewHandler(logger, moveAgent)
	matchManager := usecase.NewMatchManager(logger, handler, eventRepo, gameID, conf.Agent)

	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting status server", "port", conf.HTTPPort)
			router := rest.NewRouter(rest.NewStatusHandler(matchManager))
			if httpErr := rest.Start(ctx, logger, conf.HTTPPort, router); httpErr != nil {
				log.Error("status server error", "error", httpErr)
			}
		}()
	}

	log.Info("Joining match", "game_id", gameID, "agent", conf.Agent)

	conn, err := websocket.Dial(ctx, logger, url)
	if err != nil {
		return fmt.Errorf("could not join match: %w", err)
	}

	// unblocks the pending receive on shutdown
	stop := context.AfterFunc(ctx, func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Error("could not close connection", "error", closeErr)
		}
	})
	defer func() {
		stop()
		_ = conn.Close()
	}()

	go conn.Heartbeat(ctx, conf.PingInterval, func() any { return protocol.Ping() })

	if err = matchManager.Play(ctx, conn); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("Match interrupted, shutting down")
			return nil
		}
		return fmt.Errorf("match failed: %w", err)
	}

	return nil
}

func newEventRepository(
	ctx context.Context, log *slog.Logger, conf *config.Config, gameID string,
) (repository.EventRepository, func(), error) {
	if !conf.Redis.Enabled() {
		return repository.NewDiscardEventRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	channel := conf.Redis.ChannelFor(gameID)
	log.Info("Publishing match events", "channel", channel)

	closeFeed := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewEventRepository(redisStorage, channel), closeFeed, nil
}
