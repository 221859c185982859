package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/document"
	"github.com/vango-dev/vtree/pkg/host/memtree"
)

// liveSession is a session driven by a websocket connection.
type liveSession struct {
	*session
	conn   *websocket.Conn
	format document.Format
	logger *slog.Logger
}

// handleLive upgrades the connection and reconciles every document the
// client sends against the previous one.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	format := requestFormat(r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.httpMetrics.WebSocketError("upgrade")
		return
	}
	conn.SetReadLimit(s.config.MaxDocumentBytes)

	ls := &liveSession{
		session: s.newSession(),
		conn:    conn,
		format:  format,
		logger:  s.logger.With("remote", r.RemoteAddr),
	}
	s.track(ls)
	s.httpMetrics.ConnectionOpened()
	ls.logger.Info("live session opened", "format", format)

	defer func() {
		s.untrack(ls)
		s.httpMetrics.ConnectionClosed()
		if err := ls.close(); err != nil {
			ls.logger.Warn("unmount failed", "error", err)
		}
		conn.Close()
		ls.logger.Info("live session closed")
	}()

	s.readLoop(r.Context(), ls)
}

// readLoop handles documents until the connection fails or closes.
func (s *Server) readLoop(ctx context.Context, ls *liveSession) {
	for {
		ls.conn.SetReadDeadline(time.Now().Add(s.config.LiveIdleTimeout))

		_, msg, err := ls.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				ls.logger.Error("read error", "error", err)
				s.httpMetrics.WebSocketError("read")
			}
			return
		}

		res := s.handleDocument(ctx, ls, msg)

		ls.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := ls.conn.WriteJSON(res); err != nil {
			ls.logger.Error("write error", "error", err)
			s.httpMetrics.WebSocketError("write")
			return
		}
	}
}

func (s *Server) handleDocument(ctx context.Context, ls *liveSession, msg []byte) Result {
	tree, err := document.Decode(msg, ls.format, s.registry)
	if err != nil {
		s.httpMetrics.LiveDocument("error")
		ls.logger.Debug("document rejected", "error", err)
		return Result{HTML: ls.container.InnerHTML(), Mutations: []memtree.Mutation{}, Error: errorBody(err)}
	}

	res, label, err := ls.apply(ctx, tree)
	s.httpMetrics.LiveDocument(label)
	if err != nil {
		ls.logger.Debug("document failed", "error", err, "code", errors.CodeOf(err))
	}
	return res
}

func (s *Server) track(ls *liveSession) {
	s.mu.Lock()
	s.live[ls] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(ls *liveSession) {
	s.mu.Lock()
	delete(s.live, ls)
	s.mu.Unlock()
}

// LiveSessions returns the number of open live connections.
func (s *Server) LiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// closeLive sends a close frame to every live connection. Their read loops
// then end and unmount their trees.
func (s *Server) closeLive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ls := range s.live {
		ls.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second),
		)
		ls.conn.Close()
	}
}
