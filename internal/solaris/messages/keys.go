// Package messages holds the message key constants for the Solaris
// moderator's YAML template catalog.
package messages

// Message key constants.
const (
	// DayStarted: day cycle message keys
	DayStarted = "day.started"

	// WinCrew: game-over message keys
	WinCrew     = "win.crew"
	WinSaboteur = "win.saboteur"
	WinGameOver = "win.game_over"
)
