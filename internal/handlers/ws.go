package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/commands"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts requests without an Origin header and browser
// requests from allowedOrigins.
func NewWebSocket(log *logrus.Logger, allowedOrigins []string) *WebSocket {
	c := cors.New(middleware.CorsOptions(allowedOrigins))
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || c.OriginAllowed(r) {
					return true
				}
				log.WithField("origin", origin).Warn("ws origin rejected")
				return false
			},
		},
	}
}

// Connect upgrades to a websocket on which every text frame carries one or
// more newline separated commands. Each frame is answered with the results
// and the resulting game.
func (g GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", s.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		log.Debug("> ", string(message))

		var frame FrameDTO
		s.Do(func(e *mines.Engine) {
			results, err := commands.ExecuteAll(e, string(message))
			if err != nil {
				frame.Error = err.Error()
			}
			if len(results) > 0 {
				frame.Results = results
			}
			if e.Dead() {
				e.RevealAll()
			}
			frame.Game = e.Snapshot()
		})

		if err := c.WriteJSON(frame); err != nil {
			log.WithError(err).Error("write")
			break
		}
	}
}
