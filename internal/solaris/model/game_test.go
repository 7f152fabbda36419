package model

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestNewGame(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)

	if g.Status != StatusSignup {
		t.Errorf("expected signup status, got %s", g.Status)
	}
	if g.CurrentDay != 0 {
		t.Errorf("expected day 0 in signup, got %d", g.CurrentDay)
	}
	if len(g.Players) != 0 || len(g.EliminatedPlayers) != 0 {
		t.Error("expected empty rosters")
	}
}

func TestGame_AddRemovePlayer(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)

	if !g.AddPlayer(1) {
		t.Error("first add should succeed")
	}
	if g.AddPlayer(1) {
		t.Error("duplicate add should fail")
	}
	if !g.AddPlayer(2) || !g.AddPlayer(3) {
		t.Error("adds should succeed")
	}

	if !g.RemovePlayer(2) {
		t.Error("remove of present player should succeed")
	}
	if g.RemovePlayer(2) {
		t.Error("remove of absent player should fail")
	}

	// join order preserved after removal
	if len(g.Players) != 2 || g.Players[0] != 1 || g.Players[1] != 3 {
		t.Errorf("unexpected roster: %v", g.Players)
	}
}

func TestGame_Start(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)
	g.AddPlayer(1)
	g.AddPlayer(2)
	g.AddPlayer(3)

	if !g.Start() {
		t.Fatal("start from signup should succeed")
	}
	if g.Status != StatusActive {
		t.Errorf("expected active, got %s", g.Status)
	}
	if g.CurrentDay != 1 {
		t.Errorf("expected day 1 after start, got %d", g.CurrentDay)
	}

	if g.Start() {
		t.Error("second start should fail")
	}
	if g.CurrentDay != 1 {
		t.Errorf("failed start must not touch the day counter, got %d", g.CurrentDay)
	}

	g.End()
	if g.Start() {
		t.Error("start after end should fail")
	}
}

func TestGame_End_Unconditional(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)
	g.End()
	if g.Status != StatusEnded {
		t.Errorf("expected ended, got %s", g.Status)
	}

	// ending twice stays ended
	g.End()
	if g.Status != StatusEnded {
		t.Errorf("expected ended, got %s", g.Status)
	}
}

func TestGame_Eliminate_Idempotent(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)
	g.AddPlayer(1)
	g.AddPlayer(2)
	g.Start()

	g.Eliminate(1)
	g.Eliminate(1)

	if len(g.EliminatedPlayers) != 1 {
		t.Errorf("expected 1 eliminated entry, got %v", g.EliminatedPlayers)
	}
	if g.IsPlayerAlive(1) {
		t.Error("eliminated player should not be alive")
	}
	if !g.IsPlayerAlive(2) {
		t.Error("remaining player should be alive")
	}
}

func TestGame_IsPlayerAlive_NotOnRoster(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)
	g.AddPlayer(1)

	if g.IsPlayerAlive(99) {
		t.Error("player not on roster should not be alive")
	}
}

func TestGame_AdvanceDay(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)

	if g.AdvanceDay() {
		t.Error("advance in signup should fail")
	}

	g.AddPlayer(1)
	g.AddPlayer(2)
	g.AddPlayer(3)
	g.Start()

	if !g.AdvanceDay() {
		t.Error("advance while active should succeed")
	}
	if g.CurrentDay != 2 {
		t.Errorf("expected day 2, got %d", g.CurrentDay)
	}

	g.End()
	if g.AdvanceDay() {
		t.Error("advance after end should fail")
	}
	if g.CurrentDay != 2 {
		t.Errorf("failed advance must not touch the day counter, got %d", g.CurrentDay)
	}
}

func TestGame_AlivePlayers_JoinOrder(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)
	for _, id := range []int64{5, -1, 3, 8} {
		g.AddPlayer(id)
	}
	g.Start()
	g.Eliminate(3)

	alive := g.AlivePlayers()
	want := []int64{5, -1, 8}
	if len(alive) != len(want) {
		t.Fatalf("expected %v, got %v", want, alive)
	}
	for i := range want {
		if alive[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, alive)
		}
	}
}

func TestGame_JSONRoundTrip(t *testing.T) {
	g := NewGame("orbit-run", 100, 555)
	g.AddPlayer(1)
	g.AddPlayer(-2)
	g.AddPlayer(3)
	g.Start()
	g.Roles = map[int64]string{1: "Saboteur", -2: "Crew Member", 3: "Crew Member"}
	g.SetDayChannels(1, DayChannels{
		VotesChannelID:      111,
		DiscussionChannelID: 222,
		VotesMessageID:      333,
	})
	g.Eliminate(3)
	g.AdvanceDay()
	g.SetDayChannels(2, DayChannels{VotesChannelID: 444, DiscussionChannelID: 555})

	payload, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored Game
	if err := json.Unmarshal(payload, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored.Name != g.Name || restored.CreatorID != g.CreatorID ||
		restored.SignupThreadID != g.SignupThreadID {
		t.Error("identity fields not preserved")
	}
	if restored.Status != StatusActive || restored.CurrentDay != 2 {
		t.Errorf("state not preserved: %s day %d", restored.Status, restored.CurrentDay)
	}
	if len(restored.Players) != 3 || restored.Players[1] != -2 {
		t.Errorf("roster not preserved: %v", restored.Players)
	}
	if len(restored.EliminatedPlayers) != 1 || restored.EliminatedPlayers[0] != 3 {
		t.Errorf("eliminations not preserved: %v", restored.EliminatedPlayers)
	}
	if restored.Roles[1] != "Saboteur" {
		t.Errorf("roles not preserved: %v", restored.Roles)
	}

	// integer day keys survive the string round trip
	day1, ok := restored.DayChannelsFor(1)
	if !ok {
		t.Fatal("day 1 channels missing after round trip")
	}
	if day1.VotesChannelID != 111 || day1.DiscussionChannelID != 222 || day1.VotesMessageID != 333 {
		t.Errorf("day 1 channels not preserved: %+v", day1)
	}
	day2, ok := restored.DayChannelsFor(2)
	if !ok || day2.VotesChannelID != 444 {
		t.Errorf("day 2 channels not preserved: %+v ok=%v", day2, ok)
	}
}

func TestIDAllocator(t *testing.T) {
	a := NewIDAllocator()

	if got := a.Next(); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := a.Next(); got != -2 {
		t.Errorf("expected -2, got %d", got)
	}

	a.AdvancePast(-10)
	if got := a.Next(); got != -11 {
		t.Errorf("expected -11 after advance, got %d", got)
	}

	// advancing past a higher (already consumed) id is a no-op
	a.AdvancePast(-5)
	if got := a.Next(); got != -12 {
		t.Errorf("expected -12, got %d", got)
	}

	// non-negative input is ignored
	a.AdvancePast(3)
	if got := a.Next(); got != -13 {
		t.Errorf("expected -13, got %d", got)
	}
}
