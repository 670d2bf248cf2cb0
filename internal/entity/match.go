package entity

import "time"

const (
	EventJoined   = "joined"
	EventMove     = "move"
	EventPut      = "put"
	EventFinished = "finished"
)

// MatchEvent - something that happened in the match, fanned out to the feed.
type MatchEvent struct {
	Type     string     `json:"type"`
	GameID   string     `json:"game_id,omitempty"`
	Sign     Mark       `json:"sign,omitempty"`
	Position *Position  `json:"position,omitempty"`
	Row      []Position `json:"row,omitempty"`
	At       time.Time  `json:"at"`
}

// MatchStatus - read-only summary of the bot's view of the match.
type MatchStatus struct {
	GameID     string    `json:"game_id"`
	Agent      string    `json:"agent"`
	Sign       Mark      `json:"sign,omitempty"`
	WaitingFor Mark      `json:"waiting_for,omitempty"`
	XCount     int       `json:"x_count"`
	OCount     int       `json:"o_count"`
	LastMove   *Position `json:"last_move,omitempty"`
	Finished   bool      `json:"finished"`
	Winner     Mark      `json:"winner,omitempty"`
}
