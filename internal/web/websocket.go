package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	wsSubscriberBuffer = 4
	wsWriteTimeout     = 5 * time.Second
)

// handleWebSocket upgrades the connection, sends the current snapshot, and
// then pushes a new snapshot after every completed fetch cycle. Client
// messages are ignored.
func (s *DashboardServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())

	subID, ch := s.board.Subscribe(wsSubscriberBuffer)
	defer s.board.Unsubscribe(subID)
	s.log.Info("websocket client subscribed", "subID", subID)

	if err := s.writeSnapshot(ctx, conn, s.board.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info("websocket client disconnected", "subID", subID)
			return
		case snap, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "shutting down")
				return
			}
			if err := s.writeSnapshot(ctx, conn, snap); err != nil {
				return
			}
		}
	}
}

func (s *DashboardServer) writeSnapshot(ctx context.Context, conn *websocket.Conn, v any) error {
	wctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	err := wsjson.Write(wctx, conn, v)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("websocket write", "error", err)
	}
	return err
}
