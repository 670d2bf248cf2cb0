package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	maxMessageSize   = 1 << 20
)

var ErrConnectionClosed = errors.New("connection closed")

// Conn - client side of the match connection.
type Conn struct {
	logger *slog.Logger
	conn   *websocket.Conn

	writeMutex sync.Mutex
	closeOnce  sync.Once
}

// Dial - connects to the match server.
func Dial(ctx context.Context, logger *slog.Logger, url string) (*Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	conn.SetReadLimit(maxMessageSize)

	return &Conn{
		logger: logger.With("component", "websocket"),
		conn:   conn,
	}, nil
}

// Receive - blocks until the next text message arrives.
func (that *Conn) Receive() ([]byte, error) {
	for {
		messageType, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, fmt.Errorf("%w: %w", ErrConnectionClosed, err)
			}
			return nil, fmt.Errorf("failed to read message: %w", err)
		}

		if messageType != websocket.TextMessage {
			that.logger.Debug("skipping non-text message", "type", messageType)
			continue
		}

		return data, nil
	}
}

// Send - writes msg as a JSON text message.
func (that *Conn) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Heartbeat - sends ping() every interval until ctx is done or a write fails.
func (that *Conn) Heartbeat(ctx context.Context, interval time.Duration, ping func() any) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := that.Send(ping()); err != nil {
				that.logger.Warn("heartbeat stopped", "error", err)
				return
			}
		}
	}
}

// Close - says goodbye to the server and closes the socket. Safe to call more than once.
func (that *Conn) Close() error {
	var err error

	that.closeOnce.Do(func() {
		closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = that.conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(writeWait))

		err = that.conn.Close()
	})

	return err
}
