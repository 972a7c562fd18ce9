package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server, admin string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?admin=" + admin
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversOnlyToSameAdmin(t *testing.T) {
	hub := NewHub(8, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("admin"))
	}))
	defer srv.Close()

	a1 := dial(t, srv, "a1")
	a1b := dial(t, srv, "a1")
	a2 := dial(t, srv, "a2")

	assert.Eventually(t, func() bool {
		return hub.Clients("a1") == 2 && hub.Clients("a2") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(Event{AdminID: "a1", Screen: "staff", Action: ActionDeleted, ID: "s1"})

	for _, conn := range []*websocket.Conn{a1, a1b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		var got Event
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, Event{Screen: "staff", Action: ActionDeleted, ID: "s1"}, got)
	}

	require.NoError(t, a2.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := a2.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub(8, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, "a1")
	}))
	defer srv.Close()

	conn := dial(t, srv, "a1")
	assert.Eventually(t, func() bool { return hub.Clients("a1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients("a1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	h := &Hub{broadcast: make(chan Event, 1), clients: map[string]map[*websocket.Conn]bool{}}
	h.Publish(Event{AdminID: "a1", Screen: "users"})
	h.Publish(Event{AdminID: "a1", Screen: "staff"})
	require.Len(t, h.broadcast, 1)
	assert.Equal(t, "users", (<-h.broadcast).Screen)

	var nilHub *Hub
	assert.NotPanics(t, func() { nilHub.Publish(Event{}) })
}
