// Package live listens for scoreboard changes of one quest over a WebSocket.
package live

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
)

const DefaultReconnectDelay = 3 * time.Second

var ErrBadBaseURL = errors.New("base url must use http, https, ws or wss")

type TokenSourceI interface {
	// Returns current access token, false if there is none
	AccessToken() (string, bool)
}

// Listener holds at most one connection. Connecting to a quest drops the
// connection to the previous one.
type Listener struct {
	base           *url.URL
	tokens         TokenSourceI
	onUpdate       func(questID string)
	dialer         *websocket.Dialer
	logger         *zap.Logger
	reconnectDelay time.Duration

	mu      sync.Mutex
	questID string
	cancel  context.CancelFunc
	done    chan struct{}
}

type Option func(*Listener)

func WithLogger(l *zap.Logger) Option {
	return func(lis *Listener) {
		lis.logger = logger.OrNop(l)
	}
}

func WithReconnectDelay(d time.Duration) Option {
	return func(lis *Listener) {
		lis.reconnectDelay = d
	}
}

func WithDialer(d *websocket.Dialer) Option {
	return func(lis *Listener) {
		lis.dialer = d
	}
}

// New creates a listener for the backend at baseURL. http and https are
// mapped onto ws and wss.
func New(baseURL string, tokens TokenSourceI, onUpdate func(questID string), opts ...Option) (*Listener, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.New("parsing base url error: " + err.Error())
	}
	switch base.Scheme {
	case "http":
		base.Scheme = "ws"
	case "https":
		base.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, ErrBadBaseURL
	}
	lis := &Listener{
		base:           base,
		tokens:         tokens,
		onUpdate:       onUpdate,
		dialer:         websocket.DefaultDialer,
		logger:         zap.NewNop(),
		reconnectDelay: DefaultReconnectDelay,
	}
	for _, opt := range opts {
		opt(lis)
	}
	return lis, nil
}

// Connect starts listening for questID until Disconnect or ctx is done.
// Without an access token nothing is started. Any previous connection is
// closed before the new one is dialed.
func (lis *Listener) Connect(ctx context.Context, questID string) {
	if _, ok := lis.tokens.AccessToken(); !ok {
		lis.logger.Warn("no access token, live updates disabled", zap.String("quest_id", questID))
		lis.Disconnect()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	lis.mu.Lock()
	prevCancel, prevDone := lis.cancel, lis.done
	lis.questID = questID
	lis.cancel = cancel
	lis.done = done
	lis.mu.Unlock()
	if prevCancel != nil {
		prevCancel()
	}
	go func() {
		defer close(done)
		if prevDone != nil {
			<-prevDone
		}
		lis.run(ctx, questID)
	}()
	if prevDone != nil {
		<-prevDone
	}
}

// Disconnect closes the current connection and stops reconnecting. It is
// safe to call when not connected, but not from the update callback.
func (lis *Listener) Disconnect() {
	lis.mu.Lock()
	cancel, done := lis.cancel, lis.done
	lis.cancel, lis.done, lis.questID = nil, nil, ""
	lis.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// QuestID returns the quest currently listened to, empty when idle.
func (lis *Listener) QuestID() string {
	lis.mu.Lock()
	defer lis.mu.Unlock()
	return lis.questID
}

func (lis *Listener) run(ctx context.Context, questID string) {
	l := lis.logger.With(zap.String("quest_id", questID))
	for {
		if err := lis.listen(ctx, questID, l); err != nil && ctx.Err() == nil {
			l.Warn("live connection dropped", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(lis.reconnectDelay):
		}
	}
}

func (lis *Listener) listen(ctx context.Context, questID string, l *zap.Logger) error {
	token, ok := lis.tokens.AccessToken()
	if !ok {
		return errors.New("no access token")
	}
	conn, _, err := lis.dialer.DialContext(ctx, lis.endpoint(questID, token), nil)
	if err != nil {
		return errors.New("dialing error: " + err.Error())
	}
	l.Debug("live connection established")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var event entity.ScoreboardEvent
		if err := sonic.ConfigDefault.Unmarshal(data, &event); err != nil {
			l.Debug("skipping malformed live message", zap.Error(err))
			continue
		}
		if event.Type == entity.ScoreboardUpdateType && event.QuestID != "" {
			lis.onUpdate(event.QuestID)
		}
	}
}

func (lis *Listener) endpoint(questID, token string) string {
	u := lis.base.JoinPath("ws", "quests", questID)
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String()
}
