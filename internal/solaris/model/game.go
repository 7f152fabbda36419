// Package model defines the Solaris game state and its transitions.
package model

// GameStatus: lifecycle phase of a game.
type GameStatus string

const (
	// StatusSignup: accepting players, no day started.
	StatusSignup GameStatus = "signup"
	// StatusActive: roles assigned, day cycle running.
	StatusActive GameStatus = "active"
	// StatusEnded: terminal, no further transitions.
	StatusEnded GameStatus = "ended"
)

// DayChannels: the channel bundle created for one game day.
type DayChannels struct {
	VotesChannelID      int64 `json:"votes_channel_id"`
	DiscussionChannelID int64 `json:"discussion_channel_id"`
	VotesMessageID      int64 `json:"votes_message_id"`
}

// Game: authoritative state of a single game. Player IDs are int64; NPCs
// carry negative IDs, platform users non-negative ones.
//
// The state machine keeps transitions monotonic (signup -> active -> ended)
// and reports precondition failures as boolean returns. It does not enforce
// the minimum player count or signup-only joins; the service layer does.
type Game struct {
	Name              string           `json:"name"`
	CreatorID         int64            `json:"creator_id"`
	SignupThreadID    int64            `json:"signup_thread_id"`
	Status            GameStatus       `json:"status"`
	CurrentDay        int              `json:"current_day"`
	Players           []int64          `json:"players"`
	EliminatedPlayers []int64          `json:"eliminated_players"`
	Roles             map[int64]string `json:"roles"`
	// Channels is keyed by day number. encoding/json serializes int keys as
	// strings and parses them back, so the round trip preserves the map.
	Channels map[int]DayChannels `json:"channels"`
}

// NewGame creates a game in signup with an empty roster.
func NewGame(name string, creatorID int64, signupThreadID int64) *Game {
	return &Game{
		Name:              name,
		CreatorID:         creatorID,
		SignupThreadID:    signupThreadID,
		Status:            StatusSignup,
		CurrentDay:        0,
		Players:           []int64{},
		EliminatedPlayers: []int64{},
		Roles:             map[int64]string{},
		Channels:          map[int]DayChannels{},
	}
}

// AddPlayer appends the player to the roster.
// Returns false when the player is already present.
func (g *Game) AddPlayer(playerID int64) bool {
	for _, id := range g.Players {
		if id == playerID {
			return false
		}
	}
	g.Players = append(g.Players, playerID)
	return true
}

// RemovePlayer removes the player from the roster, preserving join order.
// Returns false when the player is absent.
func (g *Game) RemovePlayer(playerID int64) bool {
	for i, id := range g.Players {
		if id == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return true
		}
	}
	return false
}

// Start moves the game from signup to active and opens day 1.
// Returns false from any other status.
func (g *Game) Start() bool {
	if g.Status != StatusSignup {
		return false
	}
	g.Status = StatusActive
	g.CurrentDay = 1
	return true
}

// End moves the game to ended. Valid from any status.
func (g *Game) End() {
	g.Status = StatusEnded
}

// Eliminate marks the player eliminated. Idempotent; a repeat elimination is
// a no-op, not an error.
func (g *Game) Eliminate(playerID int64) {
	for _, id := range g.EliminatedPlayers {
		if id == playerID {
			return
		}
	}
	g.EliminatedPlayers = append(g.EliminatedPlayers, playerID)
}

// AdvanceDay increments the day counter.
// Returns false unless the game is active.
func (g *Game) AdvanceDay() bool {
	if g.Status != StatusActive {
		return false
	}
	g.CurrentDay++
	return true
}

// IsPlayerAlive reports whether the player is on the roster and not
// eliminated.
func (g *Game) IsPlayerAlive(playerID int64) bool {
	onRoster := false
	for _, id := range g.Players {
		if id == playerID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return false
	}
	for _, id := range g.EliminatedPlayers {
		if id == playerID {
			return false
		}
	}
	return true
}

// AlivePlayers returns the non-eliminated roster in join order.
func (g *Game) AlivePlayers() []int64 {
	eliminated := make(map[int64]struct{}, len(g.EliminatedPlayers))
	for _, id := range g.EliminatedPlayers {
		eliminated[id] = struct{}{}
	}

	alive := make([]int64, 0, len(g.Players))
	for _, id := range g.Players {
		if _, out := eliminated[id]; !out {
			alive = append(alive, id)
		}
	}
	return alive
}

// SetDayChannels records the channel bundle for a day.
func (g *Game) SetDayChannels(day int, channels DayChannels) {
	if g.Channels == nil {
		g.Channels = map[int]DayChannels{}
	}
	g.Channels[day] = channels
}

// DayChannelsFor returns the channel bundle for a day.
func (g *Game) DayChannelsFor(day int) (DayChannels, bool) {
	ch, ok := g.Channels[day]
	return ch, ok
}
