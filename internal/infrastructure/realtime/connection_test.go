package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSocket upgrades a loopback HTTP connection and hands back the
// server side of the websocket.
func newTestSocket(t *testing.T) *websocket.Conn {
	t.Helper()
	upgraded := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{}
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		upgraded <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server := <-upgraded
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func TestSendAfterCloseReturnsError(t *testing.T) {
	conn := NewConnection(7, newTestSocket(t))
	conn.Start()

	err := conn.Send([]byte("before"))
	require.NoError(t, err)

	conn.Close(websocket.CloseNormalClosure, "bye")

	for i := 0; i < 100; i++ {
		assert.ErrorIs(t, conn.Send([]byte("after")), ErrConnectionClosed)
	}
}

// Sends racing Close must fail cleanly, never panic: an eviction or a
// shutdown can close a connection while a live delivery is in flight.
func TestConcurrentSendAndClose(t *testing.T) {
	conn := NewConnection(7, newTestSocket(t))
	conn.Start()

	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = conn.Send([]byte("payload"))
		}()
	}
	conn.Close(websocket.CloseGoingAway, "racing close")
	wg.Wait()

	assert.ErrorIs(t, conn.Send([]byte("late")), ErrConnectionClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	conn := NewConnection(7, newTestSocket(t))
	conn.Start()

	conn.Close(websocket.CloseNormalClosure, "first")
	conn.Close(websocket.CloseNormalClosure, "second")

	assert.ErrorIs(t, conn.Send([]byte("x")), ErrConnectionClosed)
}
