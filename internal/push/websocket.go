package push

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketSource struct {
	url    string
	dialer *websocket.Dialer
	tokens TokenSource
	logger *zap.Logger
}

// NewWebSocketSource connects to rawURL (ws:// or wss://). tokens may be nil
// for order streams that do not authenticate.
func NewWebSocketSource(rawURL string, tokens TokenSource, logger *zap.Logger) *WebSocketSource {
	return &WebSocketSource{
		url: rawURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		tokens: tokens,
		logger: logger,
	}
}

func (s *WebSocketSource) Subscribe(ctx context.Context) (Subscription, error) {
	header := http.Header{}
	if s.tokens != nil {
		token, err := s.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading access token: %w", err)
		}
		if token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", s.url, err)
	}

	sub := &wsSubscription{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		logger: s.logger,
	}
	go sub.readLoop()

	s.logger.Info("push channel connected", zap.String("url", s.url))
	return sub, nil
}

type wsSubscription struct {
	conn      *websocket.Conn
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

func (s *wsSubscription) Events() <-chan Event {
	return s.events
}

func (s *wsSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = s.conn.Close()
	})
	return err
}

func (s *wsSubscription) readLoop() {
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Info("push channel closed by server")
				} else {
					s.logger.Error("push channel read failed", zap.Error(err))
				}
			}
			return
		}

		ev, err := Decode(data)
		if err != nil {
			s.logger.Warn("ignoring malformed push payload", zap.Error(err), zap.Int("bytes", len(data)))
			continue
		}

		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}
