package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rocketscienceinc/amoeba-bot/internal/apperror"
	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
	"github.com/rocketscienceinc/amoeba-bot/internal/protocol"
)

type connection interface {
	Receive() ([]byte, error)
	Send(msg any) error
}

type messageHandler interface {
	Handle(msg *protocol.ServerMessage, state protocol.State) (protocol.State, protocol.Outcome, error)
}

type eventRepo interface {
	Publish(ctx context.Context, event *entity.MatchEvent) error
}

// MatchManager - drives one match from the first server message to the game result.
type MatchManager struct {
	logger    *slog.Logger
	handler   messageHandler
	eventRepo eventRepo

	gameID    string
	agentName string

	status atomic.Pointer[entity.MatchStatus]
	now    func() time.Time
}

func NewMatchManager(logger *slog.Logger, handler messageHandler, eventRepo eventRepo, gameID, agentName string) *MatchManager {
	manager := &MatchManager{
		logger: logger.With("component", "match", "game_id", gameID),

		handler:   handler,
		eventRepo: eventRepo,

		gameID:    gameID,
		agentName: agentName,
		now:       time.Now,
	}

	manager.status.Store(&entity.MatchStatus{GameID: gameID, Agent: agentName})

	return manager
}

// Play - handles messages in arrival order until the game ends or the connection fails.
func (that *MatchManager) Play(ctx context.Context, conn connection) error {
	log := that.logger.With("method", "Play")

	state := protocol.NewState()

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("match interrupted: %w", err)
		}

		raw, err := conn.Receive()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("match interrupted: %w", ctxErr)
			}
			return fmt.Errorf("failed to receive message: %w", err)
		}

		msg, err := protocol.Decode(raw)
		if err != nil {
			log.Error("discarding message", "error", err, "message", string(raw))
			continue
		}

		next, outcome, err := that.handler.Handle(msg, state)
		if err != nil {
			if errors.Is(err, apperror.ErrMalformedMessage) {
				log.Error("discarding message", "type", msg.Type, "error", err, "message", string(raw))
			} else {
				log.Error("failed to handle message", "type", msg.Type, "error", err)
			}
			continue
		}

		state = next
		that.publish(ctx, outcome.Event)

		if outcome.Outbound != nil {
			if err = conn.Send(outcome.Outbound); err != nil {
				return fmt.Errorf("failed to send %s: %w", outcome.Outbound.Type, err)
			}

			if outcome.Outbound.Type == protocol.TypePut {
				log.Info("move sent", "sign", state.Turn.Sign, "position", outcome.Outbound.Position.String())
				that.publish(ctx, &entity.MatchEvent{
					Type:     entity.EventPut,
					Sign:     state.Turn.Sign,
					Position: outcome.Outbound.Position,
					At:       that.now(),
				})
			}
		}

		that.updateStatus(state, outcome)

		if outcome.Finished {
			status := that.Status()
			log.Info("game finished", "winner", status.Winner, "sign", status.Sign)
			return nil
		}
	}
}

// Status - latest snapshot of the match, safe to call from other goroutines.
func (that *MatchManager) Status() entity.MatchStatus {
	return *that.status.Load()
}

func (that *MatchManager) publish(ctx context.Context, event *entity.MatchEvent) {
	if event == nil {
		return
	}

	event.GameID = that.gameID

	if err := that.eventRepo.Publish(ctx, event); err != nil {
		that.logger.Warn("failed to publish event", "event", event.Type, "error", err)
	}
}

func (that *MatchManager) updateStatus(state protocol.State, outcome protocol.Outcome) {
	previous := that.status.Load()

	status := &entity.MatchStatus{
		GameID:     that.gameID,
		Agent:      that.agentName,
		Sign:       state.Turn.Sign,
		WaitingFor: state.Turn.WaitingFor,
		XCount:     state.Board.Count(entity.MarkX),
		OCount:     state.Board.Count(entity.MarkO),
		LastMove:   previous.LastMove,
		Finished:   outcome.Finished,
	}

	if event := outcome.Event; event != nil {
		switch event.Type {
		case entity.EventMove:
			status.LastMove = event.Position
		case entity.EventFinished:
			status.Winner = event.Sign
		}
	}

	that.status.Store(status)
}
