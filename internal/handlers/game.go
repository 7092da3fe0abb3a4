package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type GameHandler struct {
	log      *logrus.Logger
	store    *session.Store
	defaults mines.GameParams
	ws       *WebSocket
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	defaults mines.GameParams,
	ws *WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		store:    store,
		defaults: defaults,
		ws:       ws,
	}
}

func (g GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /status", g.Status)
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game/{id}", g.Fetch)
	mux.HandleFunc("POST /game/{id}/reveal", g.Reveal)
	mux.HandleFunc("POST /game/{id}/flag", g.Flag)
	mux.HandleFunc("POST /game/{id}/chord", g.Chord)
	mux.HandleFunc("POST /game/{id}/forfeit", g.Forfeit)
	mux.HandleFunc("GET /game/{id}/connect", g.Connect)
}

func (g GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, map[string]any{
		"status":   "ok",
		"sessions": g.store.Len(),
	})
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		sendStatus(w, g.log, http.StatusBadRequest, wrapError(err))
		return
	}

	s, token, err := g.store.Create(params)
	switch {
	case errors.Is(err, mines.ErrInvalidParameters):
		sendStatus(w, g.log, http.StatusBadRequest, wrapError(err))
		return
	case errors.Is(err, session.ErrFull):
		sendStatus(w, g.log, http.StatusServiceUnavailable, wrapError(err))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create game session")
		return
	}

	var snapshot mines.Snapshot
	s.Do(func(e *mines.Engine) { snapshot = e.Snapshot() })

	sendStatus(w, g.log, http.StatusCreated, NewSessionDTO(s, token, snapshot))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := g.store.Get(r.PathValue("id"))
	if err != nil {
		sendStatus(w, g.log, http.StatusNotFound, wrapError(err))
		return
	}

	var snapshot mines.Snapshot
	s.Do(func(e *mines.Engine) { snapshot = e.Snapshot() })

	sendJSONOrLog(w, g.log, NewSessionDTO(s, "", snapshot))
}

// authorize resolves the session of the request and checks its token. It
// writes the error response itself.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		sendStatus(w, g.log, http.StatusUnauthorized, wrapError(session.ErrBadToken))
		return nil, false
	}
	s, err := g.store.Authorize(r.PathValue("id"), token)
	switch {
	case errors.Is(err, session.ErrNotFound):
		sendStatus(w, g.log, http.StatusNotFound, wrapError(err))
		return nil, false
	case err != nil:
		sendStatus(w, g.log, http.StatusUnauthorized, wrapError(session.ErrBadToken))
		return nil, false
	}
	return s, true
}

// move runs fn against the session engine at the requested position and
// reveals the field once the game is lost.
func (g GameHandler) move(
	w http.ResponseWriter, r *http.Request,
	fn func(e *mines.Engine, x, y int) any,
) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		sendStatus(w, g.log, http.StatusBadRequest, wrapError(err))
		return
	}
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var dto MoveDTO
	s.Do(func(e *mines.Engine) {
		dto.Result = fn(e, pos.X, pos.Y)
		if e.Dead() {
			e.RevealAll()
		}
		dto.Game = e.Snapshot()
	})

	g.log.WithFields(logrus.Fields{
		"session": s.ID,
		"x":       pos.X,
		"y":       pos.Y,
		"dead":    dto.Game.Dead,
		"won":     dto.Game.Won,
	}).Debug("move")

	sendJSONOrLog(w, g.log, dto)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, func(e *mines.Engine, x, y int) any {
		return e.Reveal(x, y)
	})
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, func(e *mines.Engine, x, y int) any {
		return e.ToggleFlag(x, y)
	})
}

func (g GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, func(e *mines.Engine, x, y int) any {
		return e.Chord(x, y)
	})
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var snapshot mines.Snapshot
	s.Do(func(e *mines.Engine) {
		e.Forfeit()
		snapshot = e.Snapshot()
	})

	sendJSONOrLog(w, g.log, NewSessionDTO(s, "", snapshot))
}
