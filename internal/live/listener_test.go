package live_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/limbo/cherries/internal/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s staticTokens) AccessToken() (string, bool) {
	return s.token, s.token != ""
}

// wsServer accepts quest sockets, sends the given frames and then either
// closes the connection or keeps it open until the client leaves.
type wsServer struct {
	*httptest.Server
	upgrader  websocket.Upgrader
	frames    [][]byte
	keepOpen  bool
	mu        sync.Mutex
	paths     []string
	tokens    []string
	connected atomic.Int32
	active    atomic.Int32
}

func newWSServer(t *testing.T, keepOpen bool, frames ...string) *wsServer {
	t.Helper()
	s := &wsServer{keepOpen: keepOpen}
	for _, f := range frames {
		s.frames = append(s.frames, []byte(f))
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *wsServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.tokens = append(s.tokens, r.URL.Query().Get("token"))
	s.mu.Unlock()
	s.connected.Add(1)
	s.active.Add(1)
	defer s.active.Add(-1)

	_ = conn.WriteMessage(websocket.BinaryMessage, []byte{0x1})
	for _, f := range s.frames {
		if err := conn.WriteMessage(websocket.TextMessage, f); err != nil {
			return
		}
	}
	if !s.keepOpen {
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *wsServer) seenPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

type updates struct {
	ch chan string
}

func newUpdates() *updates {
	return &updates{ch: make(chan string, 16)}
}

func (u *updates) push(questID string) {
	u.ch <- questID
}

func (u *updates) next(t *testing.T) string {
	t.Helper()
	select {
	case id := <-u.ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("no scoreboard update received")
		return ""
	}
}

func TestListenerDeliversScoreboardUpdates(t *testing.T) {
	t.Parallel()
	srv := newWSServer(t, true,
		`{"type":"presence","quest_id":"q-1"}`,
		`not json`,
		`{"type":"scoreboard_update"}`,
		`{"type":"scoreboard_update","quest_id":"q-1"}`,
	)
	got := newUpdates()
	lis, err := live.New(srv.URL+"/", staticTokens{token: "access-1"}, got.push)
	require.NoError(t, err)

	lis.Connect(context.Background(), "q-1")
	defer lis.Disconnect()
	assert.Equal(t, "q-1", got.next(t))
	assert.Equal(t, "q-1", lis.QuestID())
	assert.Equal(t, []string{"/ws/quests/q-1"}, srv.seenPaths())
	srv.mu.Lock()
	assert.Equal(t, []string{"access-1"}, srv.tokens)
	srv.mu.Unlock()
	select {
	case id := <-got.ch:
		t.Fatalf("unexpected update for %s", id)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestListenerReconnects(t *testing.T) {
	t.Parallel()
	srv := newWSServer(t, false, `{"type":"scoreboard_update","quest_id":"q-1"}`)
	got := newUpdates()
	lis, err := live.New(srv.URL, staticTokens{token: "access-1"}, got.push, live.WithReconnectDelay(10*time.Millisecond))
	require.NoError(t, err)

	lis.Connect(context.Background(), "q-1")
	defer lis.Disconnect()
	got.next(t)
	got.next(t)
	assert.GreaterOrEqual(t, srv.connected.Load(), int32(2))
}

func TestListenerSingleConnection(t *testing.T) {
	t.Parallel()
	srv := newWSServer(t, true)
	lis, err := live.New(srv.URL, staticTokens{token: "access-1"}, func(string) {})
	require.NoError(t, err)
	ctx := context.Background()

	lis.Connect(ctx, "q-1")
	require.Eventually(t, func() bool { return srv.active.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	lis.Connect(ctx, "q-2")
	require.Eventually(t, func() bool { return srv.connected.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return srv.active.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "q-2", lis.QuestID())

	lis.Disconnect()
	assert.Eventually(t, func() bool { return srv.active.Load() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "", lis.QuestID())
	assert.Equal(t, []string{"/ws/quests/q-1", "/ws/quests/q-2"}, srv.seenPaths())
}

// countingConn reports its close once to the owning dialer.
type countingConn struct {
	net.Conn
	once   sync.Once
	onDone func()
}

func (c *countingConn) Close() error {
	c.once.Do(c.onDone)
	return c.Conn.Close()
}

// openConns tracks client side sockets and the highest number open at once.
type openConns struct {
	open atomic.Int32
	max  atomic.Int32
}

func (oc *openConns) dialer() *websocket.Dialer {
	return &websocket.Dialer{
		HandshakeTimeout: 2 * time.Second,
		NetDialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := (&net.Dialer{}).DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			n := oc.open.Add(1)
			for {
				m := oc.max.Load()
				if n <= m || oc.max.CompareAndSwap(m, n) {
					break
				}
			}
			return &countingConn{Conn: conn, onDone: func() { oc.open.Add(-1) }}, nil
		},
	}
}

func TestListenerConcurrentConnect(t *testing.T) {
	t.Parallel()
	srv := newWSServer(t, true)
	conns := &openConns{}
	lis, err := live.New(srv.URL, staticTokens{token: "access-1"}, func(string) {}, live.WithDialer(conns.dialer()))
	require.NoError(t, err)
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lis.Connect(ctx, "q-1")
			}()
		}
		wg.Wait()
	}
	assert.Eventually(t, func() bool { return conns.open.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), conns.max.Load())

	lis.Disconnect()
	assert.Equal(t, int32(0), conns.open.Load())
	assert.Eventually(t, func() bool { return srv.active.Load() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestListenerWithoutToken(t *testing.T) {
	t.Parallel()
	srv := newWSServer(t, true)
	lis, err := live.New(srv.URL, staticTokens{}, func(string) {})
	require.NoError(t, err)

	lis.Connect(context.Background(), "q-1")
	lis.Disconnect()
	assert.Equal(t, int32(0), srv.connected.Load())
	assert.Equal(t, "", lis.QuestID())
}

func TestNewRejectsUnknownScheme(t *testing.T) {
	t.Parallel()
	_, err := live.New("ftp://example.com", staticTokens{}, func(string) {})
	assert.ErrorIs(t, err, live.ErrBadBaseURL)
}
