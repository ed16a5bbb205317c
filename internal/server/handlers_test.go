package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/chatroom/internal/chat"
	"github.com/Tyrowin/chatroom/internal/server"
)

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	server.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	require.Equal(t, "chatroom server is running!", rec.Body.String())
}

func TestChatPageHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	server.ChatPageHandler(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	require.Contains(t, body, "<title>Chatroom</title>")
	require.Contains(t, body, chat.Everyone)
}

func TestRosterHandler(t *testing.T) {
	ts := startServer(t, defaultTestConfig(), nil)

	getRoster := func() []string {
		resp, err := http.Get(ts.http.URL + "/roster")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var body server.RosterResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Names
	}

	require.Empty(t, getRoster())

	conn := dial(t, ts.wsURL)
	id := expectAnnounce(t, conn).ConnectionID
	joinAs(t, conn, id, "Alice")
	expectRoster(t, conn, "Alice")

	require.Equal(t, []string{"Alice"}, getRoster())
}

func TestRosterHandler_RejectsNonGet(t *testing.T) {
	ts := startServer(t, defaultTestConfig(), nil)

	resp, err := http.Post(ts.http.URL+"/roster", "text/plain", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRosterHandler_RoomClosed(t *testing.T) {
	srv := server.New(defaultTestConfig(), nil, nil, nil)
	srv.StartRoom()
	require.NoError(t, srv.Shutdown(time.Second))

	rec := httptest.NewRecorder()
	srv.RosterHandler(rec, httptest.NewRequest(http.MethodGet, "/roster", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes(t *testing.T) {
	ts := startServer(t, defaultTestConfig(), nil)

	resp, err := http.Get(ts.http.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "chatroom server is running!", string(body))

	page, err := http.Get(ts.http.URL + "/chat")
	require.NoError(t, err)
	defer page.Body.Close()
	require.Equal(t, "text/html", page.Header.Get("Content-Type"))

	// A plain GET without upgrade headers is refused by the upgrader.
	ws, err := http.Get(ts.http.URL + "/ws")
	require.NoError(t, err)
	defer ws.Body.Close()
	require.Equal(t, http.StatusBadRequest, ws.StatusCode)
}
