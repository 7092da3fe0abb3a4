package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var defaults = mines.GameParams{Width: 9, Height: 9, MineCount: 10, SafeStart: true}

const allowedOrigin = "https://mines.example.com"

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	Token     string         `json:"token"`
	Game      mines.Snapshot `json:"game"`
}

type moveResponse struct {
	Result map[string]any `json:"result"`
	Game   mines.Snapshot `json:"game"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	store, err := session.NewStore(config.SessionConfig{Secret: "test", MaxSessions: 8}, log)
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewGameHandler(log, store, defaults, NewWebSocket(log, []string{allowedOrigin})).Register(mux)
	srv := httptest.NewServer(middleware.Wrap(mux, middleware.SessionToken()))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, token string, v any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	}
	return res.StatusCode
}

func newGame(t *testing.T, srv *httptest.Server, query string) sessionResponse {
	t.Helper()
	var s sessionResponse
	code := post(t, srv, "/game?"+query, "", &s)
	require.Equal(t, http.StatusCreated, code)
	return s
}

func TestNewGame(t *testing.T) {
	srv := newTestServer(t)

	s := newGame(t, srv, "")
	assert.NotEmpty(t, s.SessionID)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, 9, s.Game.Width)
	assert.Equal(t, 10, s.Game.RemainingMines)
	require.Len(t, s.Game.Grid, 9)
	for _, row := range s.Game.Grid {
		assert.Equal(t, strings.Split(strings.Repeat(mines.SymbolHidden, 9), ""), row)
	}

	s = newGame(t, srv, "width=30&height=16&mine_count=99")
	assert.Equal(t, 30, s.Game.Width)
	assert.Equal(t, 16, s.Game.Height)
	assert.Equal(t, 99, s.Game.MineCount)
}

func TestNewGameInvalid(t *testing.T) {
	srv := newTestServer(t)
	for _, query := range []string{
		"width=1&height=1&mine_count=1",
		"width=60&height=60&mine_count=10",
		"mine_count=81",
		"width=abc",
	} {
		t.Run(query, func(t *testing.T) {
			var body map[string]string
			code := post(t, srv, "/game?"+query, "", &body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestFetch(t *testing.T) {
	srv := newTestServer(t)
	s := newGame(t, srv, "")

	res, err := srv.Client().Get(srv.URL + "/game/" + s.SessionID)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var fetched sessionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&fetched))
	assert.Equal(t, s.SessionID, fetched.SessionID)
	assert.Empty(t, fetched.Token)
	assert.Equal(t, s.Game, fetched.Game)

	res, err = srv.Client().Get(srv.URL + "/game/unknown")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMoves(t *testing.T) {
	srv := newTestServer(t)
	s := newGame(t, srv, "")
	base := "/game/" + s.SessionID

	var flag moveResponse
	require.Equal(t, http.StatusOK, post(t, srv, base+"/flag?x=0&y=0", s.Token, &flag))
	assert.Equal(t, true, flag.Result["changed"])
	assert.Equal(t, 9, flag.Game.RemainingMines)

	var reveal moveResponse
	require.Equal(t, http.StatusOK, post(t, srv, base+"/reveal?x=4&y=4", s.Token, &reveal))
	assert.Contains(t, []any{"empty", "numbered"}, reveal.Result["outcome"])
	assert.False(t, reveal.Game.Dead)
	assert.NotEqual(t, mines.SymbolHidden, reveal.Game.Grid[4][4])

	var again moveResponse
	require.Equal(t, http.StatusOK, post(t, srv, base+"/reveal?x=4&y=4", s.Token, &again))
	assert.Equal(t, "already_revealed", again.Result["outcome"])

	var outside moveResponse
	require.Equal(t, http.StatusOK, post(t, srv, base+"/reveal?x=40&y=4", s.Token, &outside))
	assert.Equal(t, "out_of_bounds", outside.Result["outcome"])

	var chord moveResponse
	require.Equal(t, http.StatusOK, post(t, srv, base+"/chord?x=4&y=4", s.Token, &chord))
	assert.NotNil(t, chord.Result["outcome"])

	var forfeit sessionResponse
	require.Equal(t, http.StatusOK, post(t, srv, base+"/forfeit", s.Token, &forfeit))
	assert.True(t, forfeit.Game.Dead)
	for _, row := range forfeit.Game.Grid {
		assert.NotContains(t, row, mines.SymbolHidden)
	}
}

func TestMovesRejected(t *testing.T) {
	srv := newTestServer(t)
	a := newGame(t, srv, "")
	b := newGame(t, srv, "")

	tests := []struct {
		name  string
		path  string
		token string
		code  int
	}{
		{"no token", "/game/" + a.SessionID + "/reveal?x=0&y=0", "", http.StatusUnauthorized},
		{"other token", "/game/" + a.SessionID + "/reveal?x=0&y=0", b.Token, http.StatusUnauthorized},
		{"bad token", "/game/" + a.SessionID + "/flag?x=0&y=0", "nope", http.StatusUnauthorized},
		{"missing position", "/game/" + a.SessionID + "/reveal?x=0", a.Token, http.StatusBadRequest},
		{"bad position", "/game/" + a.SessionID + "/reveal?x=a&y=0", a.Token, http.StatusBadRequest},
		{"forfeit no token", "/game/" + a.SessionID + "/forfeit", "", http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.code, post(t, srv, test.path, test.token, nil))
		})
	}
}

func TestStatus(t *testing.T) {
	srv := newTestServer(t)
	newGame(t, srv, "")

	res, err := srv.Client().Get(srv.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["sessions"])
}

func dial(t *testing.T, srv *httptest.Server, s sessionResponse) *websocket.Conn {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	u.Scheme = "ws"
	u.Path = fmt.Sprintf("/game/%s/connect", s.SessionID)
	u.RawQuery = url.Values{"token": {s.Token}}.Encode()

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

type frameResponse struct {
	Results []map[string]any `json:"results"`
	Error   string           `json:"error"`
	Game    mines.Snapshot   `json:"game"`
}

func TestConnect(t *testing.T) {
	srv := newTestServer(t)
	s := newGame(t, srv, "")
	c := dial(t, srv, s)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("f 8 8\no 4 4\n")))
	var frame frameResponse
	require.NoError(t, c.ReadJSON(&frame))
	assert.Empty(t, frame.Error)
	require.Len(t, frame.Results, 2)
	assert.Equal(t, "f", frame.Results[0]["command"])
	assert.Equal(t, "o", frame.Results[1]["command"])
	assert.NotEqual(t, mines.SymbolHidden, frame.Game.Grid[4][4])

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("bogus")))
	frame = frameResponse{}
	require.NoError(t, c.ReadJSON(&frame))
	assert.NotEmpty(t, frame.Error)
	assert.Empty(t, frame.Results)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("r")))
	frame = frameResponse{}
	require.NoError(t, c.ReadJSON(&frame))
	for _, row := range frame.Game.Grid {
		assert.NotContains(t, row, mines.SymbolHidden)
	}
}

func TestConnectRejected(t *testing.T) {
	srv := newTestServer(t)
	s := newGame(t, srv, "")

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + s.SessionID + "/connect"
	_, res, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestConnectOrigin(t *testing.T) {
	srv := newTestServer(t)
	s := newGame(t, srv, "")
	u := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/game/" + s.SessionID + "/connect?token=" + url.QueryEscape(s.Token)

	c, _, err := websocket.DefaultDialer.Dial(u, http.Header{"Origin": {allowedOrigin}})
	require.NoError(t, err)
	c.Close()

	_, res, err := websocket.DefaultDialer.Dial(u, http.Header{"Origin": {"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
