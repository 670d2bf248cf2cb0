package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/amoeba-bot/internal/apperror"
	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

// Server message kinds.
const (
	TypeInfo       = "info"
	TypeFullScan   = "full-scan"
	TypeNewPoint   = "new-point"
	TypeGameResult = "game-result"
	TypeError      = "error"
	TypeEvent      = "event"
	TypePong       = "pong"
	TypePartScan   = "part-scan"
)

// Client message kinds.
const (
	TypeFullScanRequest = "full-scan"
	TypePut             = "put"
	TypePing            = "ping"
)

// ServerMessage - inbound message; Raw keeps the whole object for the kind specific decoding.
type ServerMessage struct {
	Type string
	Raw  json.RawMessage
}

// ClientMessage - outbound message.
type ClientMessage struct {
	Type     string           `json:"type"`
	Position *entity.Position `json:"position,omitempty"`
}

func FullScanRequest() *ClientMessage {
	return &ClientMessage{Type: TypeFullScanRequest}
}

func Put(pos entity.Position) *ClientMessage {
	return &ClientMessage{Type: TypePut, Position: &pos}
}

func Ping() *ClientMessage {
	return &ClientMessage{Type: TypePing}
}

type infoPayload struct {
	Sign       *string `json:"sign"`
	WaitingFor *string `json:"waitingFor"`
}

type fullScanPayload struct {
	Xs *[]wirePosition `json:"xs"`
	Os *[]wirePosition `json:"os"`
}

type newPointPayload struct {
	Sign     *string       `json:"sign"`
	Position *wirePosition `json:"position"`
}

type gameResultPayload struct {
	Sign string            `json:"sign"`
	Row  []entity.Position `json:"row"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type eventPayload struct {
	Event string `json:"event"`
}

type wirePosition struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func (that *wirePosition) position() (entity.Position, error) {
	if that == nil || that.X == nil || that.Y == nil {
		return entity.Position{}, fmt.Errorf("%w: position requires x and y", apperror.ErrMalformedMessage)
	}
	return entity.NewPosition(*that.X, *that.Y), nil
}

// Decode - parses the envelope of a server message.
func Decode(data []byte) (*ServerMessage, error) {
	var envelope struct {
		Type *string `json:"type"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	if envelope.Type == nil {
		return nil, fmt.Errorf("%w: missing type", apperror.ErrMalformedMessage)
	}

	return &ServerMessage{Type: *envelope.Type, Raw: json.RawMessage(data)}, nil
}

func decodePayload(msg *ServerMessage, payload any) error {
	if err := json.Unmarshal(msg.Raw, payload); err != nil {
		return fmt.Errorf("%w: %s: %w", apperror.ErrMalformedMessage, msg.Type, err)
	}
	return nil
}

func requiredMark(field string, value *string) (entity.Mark, error) {
	if value == nil {
		return "", fmt.Errorf("%w: missing %s", apperror.ErrMalformedMessage, field)
	}

	mark, err := entity.ParseMark(*value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperror.ErrMalformedMessage, field, err)
	}

	return mark, nil
}

func positions(field string, wire *[]wirePosition) ([]entity.Position, error) {
	if wire == nil {
		return nil, fmt.Errorf("%w: missing %s", apperror.ErrMalformedMessage, field)
	}

	result := make([]entity.Position, 0, len(*wire))
	for i := range *wire {
		pos, err := (*wire)[i].position()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		result = append(result, pos)
	}

	return result, nil
}
