package protocol

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/amoeba-bot/internal/apperror"
	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

type mover interface {
	Act(board *entity.Board, sign entity.Mark) entity.Position
}

// State - everything the bot knows about the running match.
type State struct {
	Turn  entity.Turn
	Board *entity.Board
}

func NewState() State {
	return State{Board: entity.NewBoard()}
}

// Outcome - what the driver has to do after a message was handled.
type Outcome struct {
	Finished bool
	Outbound *ClientMessage
	Event    *entity.MatchEvent
}

type handlerFunc func(msg *ServerMessage, state State) (State, Outcome, error)

// Handler - turns server messages into state updates and replies.
type Handler struct {
	logger   *slog.Logger
	agent    mover
	now      func() time.Time
	handlers map[string]handlerFunc
}

func NewHandler(logger *slog.Logger, agent mover) *Handler {
	handler := &Handler{
		logger:   logger.With("component", "protocol"),
		agent:    agent,
		now:      time.Now,
		handlers: make(map[string]handlerFunc),
	}

	handler.handlers[TypeInfo] = handler.handleInfo
	handler.handlers[TypeFullScan] = handler.handleFullScan
	handler.handlers[TypeNewPoint] = handler.handleNewPoint
	handler.handlers[TypeGameResult] = handler.handleGameResult
	handler.handlers[TypeError] = handler.handleError
	handler.handlers[TypeEvent] = handler.handleEvent

	return handler
}

// Handle - applies msg to state. On error the given state is returned untouched.
func (that *Handler) Handle(msg *ServerMessage, state State) (State, Outcome, error) {
	if state.Board == nil {
		state.Board = entity.NewBoard()
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		that.logger.Debug("ignoring message", "type", msg.Type)
		return state, Outcome{}, nil
	}

	next, outcome, err := handler(msg, state)
	if err != nil {
		return state, Outcome{}, err
	}

	return next, outcome, nil
}

func (that *Handler) handleInfo(msg *ServerMessage, state State) (State, Outcome, error) {
	var payload infoPayload
	if err := decodePayload(msg, &payload); err != nil {
		return state, Outcome{}, err
	}

	sign, err := requiredMark("sign", payload.Sign)
	if err != nil {
		return state, Outcome{}, err
	}

	// null when the match is already over
	var waitingFor entity.Mark
	if payload.WaitingFor != nil {
		if waitingFor, err = requiredMark("waitingFor", payload.WaitingFor); err != nil {
			return state, Outcome{}, err
		}
	}

	state.Turn = entity.Turn{Sign: sign, WaitingFor: waitingFor}

	return state, Outcome{
		Outbound: FullScanRequest(),
		Event:    &entity.MatchEvent{Type: entity.EventJoined, Sign: sign, At: that.now()},
	}, nil
}

func (that *Handler) handleFullScan(msg *ServerMessage, state State) (State, Outcome, error) {
	var payload fullScanPayload
	if err := decodePayload(msg, &payload); err != nil {
		return state, Outcome{}, err
	}

	xs, err := positions("xs", payload.Xs)
	if err != nil {
		return state, Outcome{}, err
	}

	os, err := positions("os", payload.Os)
	if err != nil {
		return state, Outcome{}, err
	}

	board, err := entity.NewBoardFromScan(xs, os)
	if err != nil {
		return state, Outcome{}, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	state.Board = board

	return state, that.play(state), nil
}

func (that *Handler) handleNewPoint(msg *ServerMessage, state State) (State, Outcome, error) {
	var payload newPointPayload
	if err := decodePayload(msg, &payload); err != nil {
		return state, Outcome{}, err
	}

	sign, err := requiredMark("sign", payload.Sign)
	if err != nil {
		return state, Outcome{}, err
	}

	if payload.Position == nil {
		return state, Outcome{}, fmt.Errorf("%w: missing position", apperror.ErrMalformedMessage)
	}

	pos, err := payload.Position.position()
	if err != nil {
		return state, Outcome{}, err
	}

	board := state.Board.Clone()
	if err = board.Place(sign, pos); err != nil {
		if errors.Is(err, entity.ErrCellOccupied) {
			return state, Outcome{}, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
		}
		return state, Outcome{}, fmt.Errorf("failed to place %s: %w", pos, err)
	}

	state.Board = board
	state.Turn = state.Turn.Observe(sign)

	outcome := that.play(state)
	outcome.Event = &entity.MatchEvent{Type: entity.EventMove, Sign: sign, Position: &pos, At: that.now()}

	return state, outcome, nil
}

func (that *Handler) handleGameResult(msg *ServerMessage, state State) (State, Outcome, error) {
	event := &entity.MatchEvent{Type: entity.EventFinished, At: that.now()}

	// the payload is informational only, a broken one still ends the game
	var payload gameResultPayload
	if err := decodePayload(msg, &payload); err != nil {
		that.logger.Warn("unreadable game result", "error", err)
	} else {
		event.Sign = entity.Mark(payload.Sign)
		event.Row = payload.Row
	}

	return state, Outcome{Finished: true, Event: event}, nil
}

func (that *Handler) handleError(msg *ServerMessage, state State) (State, Outcome, error) {
	var payload errorPayload
	if err := decodePayload(msg, &payload); err == nil {
		that.logger.Warn("server reported an error", "message", payload.Message)
	}

	return state, Outcome{}, nil
}

func (that *Handler) handleEvent(msg *ServerMessage, state State) (State, Outcome, error) {
	var payload eventPayload
	if err := decodePayload(msg, &payload); err == nil {
		that.logger.Info("opponent event", "event", payload.Event)
	}

	return state, Outcome{}, nil
}

// play - asks the agent for a move when the server waits for the bot.
func (that *Handler) play(state State) Outcome {
	if !state.Turn.MyTurn() {
		return Outcome{}
	}

	pos := that.agent.Act(state.Board, state.Turn.Sign)
	that.logger.Debug("selected move", "sign", state.Turn.Sign, "position", pos.String())

	return Outcome{Outbound: Put(pos)}
}
