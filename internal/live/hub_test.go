package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

func testSnapshot() *model.LiveSnapshot {
	return &model.LiveSnapshot{
		Timestamp:    "2024-06-15T12:00:00Z",
		LastESGInput: map[string]any{},
		InvoiceCount: 3,
	}
}

func newTestHub() *Hub {
	return NewHub(testSnapshot, nil, zerolog.Nop())
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) model.LiveMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg model.LiveMessage
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func TestHubSendsSnapshotOnConnect(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv)
	defer ws.Close()

	msg := readMessage(t, ws)
	assert.Equal(t, model.LiveUpdateType, msg.Type)
	require.NotNil(t, msg.Data)
	assert.Equal(t, 3, msg.Data.InvoiceCount)
}

func TestHubAnswersRefreshAndPing(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv)
	defer ws.Close()
	readMessage(t, ws)

	for _, probe := range []string{"refresh", "  PING  ", "Refresh"} {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(probe)))
		msg := readMessage(t, ws)
		assert.Equal(t, model.LiveUpdateType, msg.Type)
	}

	// Unrecognized text draws no reply; the next refresh still works.
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("refresh")))
	msg := readMessage(t, ws)
	assert.Equal(t, model.LiveUpdateType, msg.Type)
}

func TestHubBroadcast(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	second := dial(t, srv)
	defer second.Close()
	readMessage(t, first)
	readMessage(t, second)

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	hub.Push()
	assert.Equal(t, model.LiveUpdateType, readMessage(t, first).Type)
	assert.Equal(t, model.LiveUpdateType, readMessage(t, second).Type)
}

func TestHubEvictsDeadSubscribers(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv)
	readMessage(t, ws)
	require.Equal(t, 1, hub.SubscriberCount())

	ws.Close()

	// Writes to the closed socket fail and the sweep drops the subscriber.
	require.Eventually(t, func() bool {
		hub.Broadcast(&model.LiveMessage{Type: model.LiveUpdateType, Data: testSnapshot()})
		return hub.SubscriberCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHubPushWithoutSubscribers(t *testing.T) {
	hub := newTestHub()
	assert.NotPanics(t, hub.Push)
}

func TestHubRejectsDisallowedOrigin(t *testing.T) {
	hub := NewHub(testSnapshot, []string{"http://localhost:5173"}, zerolog.Nop())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 403, resp.StatusCode)
	}

	header = map[string][]string{"Origin": {"http://localhost:5173"}}
	ws, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	ws.Close()
}
