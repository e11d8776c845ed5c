// Package mazeapi exposes maze sessions, runs and leaderboards over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

// CreateMazeRequest asks for a new maze session. A zero size selects the default.
type CreateMazeRequest struct {
	Size int `json:"size" binding:"gte=0"`
}

// MoveRequest is one movement request, over HTTP or as a websocket frame.
type MoveRequest struct {
	Axis  string `json:"axis" binding:"required"`
	Delta int    `json:"delta"`
}

// MoveResponse is the outcome of a MoveRequest.
type MoveResponse struct {
	game.MoveResult
}

// ErrorResponse is sent for failed requests and websocket frames.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LeaderboardEntryResponse is one ranked completion time.
type LeaderboardEntryResponse struct {
	Rank       int       `json:"rank"`
	PlayerID   uuid.UUID `json:"playerId"`
	DurationMs int64     `json:"durationMs"`
}

// RunResponse is a completed run of the requesting player.
type RunResponse struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"sessionId"`
	MazeSize   int       `json:"mazeSize"`
	Moves      int       `json:"moves"`
	Blocked    int       `json:"blocked"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	DurationMs int64     `json:"durationMs"`
}

func newMoveResponse(r game.MoveResult) MoveResponse {
	return MoveResponse{MoveResult: r}
}

func newLeaderboardResponse(entries []i.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntryResponse{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			DurationMs: e.Duration.Milliseconds(),
		})
	}
	return out
}

func newRunsResponse(runs []*dmn.Run) []RunResponse {
	out := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunResponse{
			ID:         r.ID,
			SessionID:  r.SessionID,
			MazeSize:   r.MazeSize,
			Moves:      r.Moves,
			Blocked:    r.Blocked,
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
			DurationMs: r.Duration().Milliseconds(),
		})
	}
	return out
}
