package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// NewGameDTO holds the query of a new game request. Keys that are absent
// keep the configured defaults.
type NewGameDTO struct {
	Width         int  `schema:"width"`
	Height        int  `schema:"height"`
	MineCount     int  `schema:"mine_count"`
	SafeStart     bool `schema:"safe_start"`
	ClearClusters bool `schema:"clear_clusters"`
}

func ParseNewGameDTO(src map[string][]string, defaults mines.GameParams) (mines.GameParams, error) {
	dto := NewGameDTO(defaults)
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}
	return mines.GameParams(dto), nil
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type SessionDTO struct {
	SessionID string         `json:"session_id"`
	StartedAt int64          `json:"started_at"`
	Token     string         `json:"token,omitempty"`
	Game      mines.Snapshot `json:"game"`
}

func NewSessionDTO(s *session.Session, token string, game mines.Snapshot) SessionDTO {
	return SessionDTO{
		SessionID: s.ID,
		StartedAt: s.StartedAt.UnixMilli(),
		Token:     token,
		Game:      game,
	}
}

type MoveDTO struct {
	Result any            `json:"result"`
	Game   mines.Snapshot `json:"game"`
}

type FrameDTO struct {
	Results any            `json:"results,omitempty"`
	Error   string         `json:"error,omitempty"`
	Game    mines.Snapshot `json:"game"`
}
