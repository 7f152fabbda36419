package gamelogic

import "github.com/css-solaris/solaris-bot-go/internal/solaris/role"

// Winner of a finished (or still running) game.
type Winner string

const (
	// WinnerNone: the game continues.
	WinnerNone Winner = ""
	// WinnerCrew: every saboteur is gone.
	WinnerCrew Winner = "crew"
	// WinnerSaboteur: saboteurs reached parity.
	WinnerSaboteur Winner = "saboteur"
	// WinnerGameOver: legacy role-less game reached one survivor.
	WinnerGameOver Winner = "game_over"
)

// CheckWinCondition evaluates the board after an elimination.
//
// Games persisted before role assignment existed carry an empty role map;
// those run in legacy mode, ending once a single survivor remains.
func CheckWinCondition(alive []int64, roles map[int64]string) Winner {
	if len(alive) == 0 {
		return WinnerCrew
	}

	if len(roles) == 0 {
		if len(alive) <= 1 {
			return WinnerGameOver
		}
		return WinnerNone
	}

	saboteurs := 0
	for _, id := range alive {
		if role.IsSaboteur(roles[id]) {
			saboteurs++
		}
	}

	if saboteurs == 0 {
		return WinnerCrew
	}
	if float64(saboteurs) >= float64(len(alive))/2 {
		return WinnerSaboteur
	}
	return WinnerNone
}
