// Package errors defines the Solaris game domain error types.
package errors

import (
	"errors"
	"fmt"

	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
)

// GameNotFoundError: no game with the given name exists.
type GameNotFoundError struct {
	Name string
}

func (e GameNotFoundError) Error() string {
	return fmt.Sprintf("game not found: %s", e.Name)
}

// GameAlreadyExistsError: a game with the given name already exists.
type GameAlreadyExistsError struct {
	Name string
}

func (e GameAlreadyExistsError) Error() string {
	return fmt.Sprintf("game already exists: %s", e.Name)
}

// GameNotActiveError: the operation needs an active game.
type GameNotActiveError struct {
	Name   string
	Status string
}

func (e GameNotActiveError) Error() string {
	return fmt.Sprintf("game %s is not active (status=%s)", e.Name, e.Status)
}

// GameNotInSignupError: the operation needs a game still in signup.
type GameNotInSignupError struct {
	Name   string
	Status string
}

func (e GameNotInSignupError) Error() string {
	return fmt.Sprintf("game %s is not in signup (status=%s)", e.Name, e.Status)
}

// NotEnoughPlayersError: the roster is below the start minimum.
type NotEnoughPlayersError struct {
	Name    string
	Have    int
	Minimum int
}

func (e NotEnoughPlayersError) Error() string {
	return fmt.Sprintf("game %s needs %d players to start, has %d", e.Name, e.Minimum, e.Have)
}

// PlayerNotInGameError: the player is not on the roster.
type PlayerNotInGameError struct {
	Name     string
	PlayerID int64
}

func (e PlayerNotInGameError) Error() string {
	return fmt.Sprintf("player %d is not in game %s", e.PlayerID, e.Name)
}

// PlayerAlreadyJoinedError: the player is already on the roster.
type PlayerAlreadyJoinedError struct {
	Name     string
	PlayerID int64
}

func (e PlayerAlreadyJoinedError) Error() string {
	return fmt.Sprintf("player %d already joined game %s", e.PlayerID, e.Name)
}

// PlayerEliminatedError: the player has been eliminated.
type PlayerEliminatedError struct {
	Name     string
	PlayerID int64
}

func (e PlayerEliminatedError) Error() string {
	return fmt.Sprintf("player %d is eliminated from game %s", e.PlayerID, e.Name)
}

// InvalidVoteTargetError: the ballot points at something unvotable.
type InvalidVoteTargetError struct {
	Name   string
	Target string
}

func (e InvalidVoteTargetError) Error() string {
	return fmt.Sprintf("invalid vote target %s in game %s", e.Target, e.Name)
}

// NPCNotFoundError: no NPC with the given name or id exists.
type NPCNotFoundError struct {
	Name string
}

func (e NPCNotFoundError) Error() string {
	return fmt.Sprintf("npc not found: %s", e.Name)
}

// NPCAlreadyExistsError: the NPC name is taken (case-insensitive).
type NPCAlreadyExistsError struct {
	Name string
}

func (e NPCAlreadyExistsError) Error() string {
	return fmt.Sprintf("npc already exists: %s", e.Name)
}

// expectedUserBehaviorTypes: mistakes within the normal command flow, logged
// at info and answered with a friendly reply instead of an error page.
var expectedUserBehaviorTypes = []func() any{
	func() any { return new(GameNotFoundError) },
	func() any { return new(GameAlreadyExistsError) },
	func() any { return new(GameNotActiveError) },
	func() any { return new(GameNotInSignupError) },
	func() any { return new(NotEnoughPlayersError) },
	func() any { return new(PlayerNotInGameError) },
	func() any { return new(PlayerAlreadyJoinedError) },
	func() any { return new(PlayerEliminatedError) },
	func() any { return new(InvalidVoteTargetError) },
	func() any { return new(NPCNotFoundError) },
	func() any { return new(NPCAlreadyExistsError) },
}

// IsExpectedUserBehavior reports whether err is an ordinary user mistake,
// here or in the shared infrastructure classification.
func IsExpectedUserBehavior(err error) bool {
	if err == nil {
		return false
	}
	for _, targetFn := range expectedUserBehaviorTypes {
		if errors.As(err, targetFn()) {
			return true
		}
	}
	return cerrors.IsExpectedUserBehavior(err)
}
