package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/dto"
	"petiscaria/internal/httpx"
)

const writeWait = 10 * time.Second

// stream pushes the feed's full list to a websocket client: once on
// connect, then after every change.
func (c *Controller) stream(w http.ResponseWriter, r *http.Request, name string, feed Feed) {
	_, logger := httpx.Trace(c.logger)
	logger = logger.With(zap.String("feed", name))

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, unsubscribe := feed.Subscribe()
	defer unsubscribe()

	// the client never sends anything meaningful; reading detects its close
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger.Info("stream client connected", zap.String("remote", r.RemoteAddr))
	defer logger.Info("stream client disconnected")

	if err := c.writeList(conn, name, feed.Orders()); err != nil {
		logger.Warn("writing to stream client", zap.Error(err))
		return
	}

	for {
		select {
		case <-gone:
			return
		case <-c.shutdown:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		case list, ok := <-updates:
			if !ok {
				return
			}
			if err := c.writeList(conn, name, list); err != nil {
				logger.Warn("writing to stream client", zap.Error(err))
				return
			}
		}
	}
}

func (c *Controller) writeList(conn *websocket.Conn, name string, orders []domain.Order) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(dto.NewOrderListResponse(name, orders, c.now()))
}
