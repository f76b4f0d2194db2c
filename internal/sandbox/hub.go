package sandbox

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/limbo/cherries/pkg/httputil"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const writeWait = 2 * time.Second

// Hub fans scoreboard updates out to the sockets of a quest.
type Hub struct {
	logger   *zap.Logger
	sockets  prometheus.Gauge
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
}

func newHub(l *zap.Logger, sockets prometheus.Gauge) *Hub {
	return &Hub{
		logger:  l,
		sockets: sockets,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Broadcast tells every socket of the quest that its scoreboard changed.
// Sockets that fail to accept the message are dropped.
func (h *Hub) Broadcast(questID string) {
	msg, err := sonic.ConfigDefault.Marshal(entity.ScoreboardEvent{Type: entity.ScoreboardUpdateType, QuestID: questID})
	if err != nil {
		h.logger.Error("encoding scoreboard event error", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[questID] {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("dropping live socket", zap.String("quest_id", questID), zap.Error(err))
			h.removeLocked(questID, conn)
			conn.Close()
		}
	}
}

// Sockets returns the number of open sockets of the quest.
func (h *Hub) Sockets(questID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[questID])
}

// Close disconnects every socket.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for questID, conns := range h.conns {
		for conn := range conns {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			conn.Close()
			h.removeLocked(questID, conn)
		}
	}
	return nil
}

func (h *Hub) add(questID string, conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[questID] == nil {
		h.conns[questID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[questID][conn] = struct{}{}
	h.sockets.Inc()
	h.mu.Unlock()
}

func (h *Hub) remove(questID string, conn *websocket.Conn) {
	h.mu.Lock()
	h.removeLocked(questID, conn)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(questID string, conn *websocket.Conn) {
	conns, ok := h.conns[questID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	h.sockets.Dec()
	if len(conns) == 0 {
		delete(h.conns, questID)
	}
}

// ServeQuestSocket upgrades /ws/quests/{id}?token=<access> for participants of the quest.
func (s *Server) ServeQuestSocket(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	questID := chi.URLParam(r, "id")
	uid, status, detail := s.authenticate(r.Context(), r.URL.Query().Get("token"))
	if status != 0 {
		l.Warn("live socket rejected", zap.String("reason", detail))
		httputil.WriteErrorResponse(w, status, detail)
		return
	}
	quests, err := s.store.QuestsForUser(r.Context(), uid)
	if err != nil {
		l.Error("live socket error: listing quests", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !slices.ContainsFunc(quests, func(q entity.Quest) bool { return q.ID == questID }) {
		l.Warn("live socket rejected: not a participant", zap.String("quest_id", questID))
		httputil.WriteErrorResponse(w, http.StatusForbidden, "Not a participant of this quest")
		return
	}
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn("live socket upgrade failed", zap.Error(err))
		return
	}
	s.hub.add(questID, conn)
	l.Debug("live socket opened", zap.String("quest_id", questID), zap.String("uid", uid))
	defer func() {
		s.hub.remove(questID, conn)
		conn.Close()
		l.Debug("live socket closed", zap.String("quest_id", questID))
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
