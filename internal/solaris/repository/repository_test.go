package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}

	repo := New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return repo
}

func TestRepository_GameRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	missing, err := repo.GetGame(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing game, got %+v", missing)
	}

	game := model.NewGame("orbit-run", 100, 555)
	game.AddPlayer(1)
	game.AddPlayer(-2)
	game.AddPlayer(3)
	game.Start()
	game.Roles = map[int64]string{1: "Saboteur", -2: "Crew Member", 3: "Crew Member"}
	game.SetDayChannels(1, model.DayChannels{VotesChannelID: 111, DiscussionChannelID: 222})
	game.Eliminate(3)

	if err := repo.SaveGame(ctx, game); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := repo.GetGame(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected stored game")
	}
	if loaded.Status != model.StatusActive || loaded.CurrentDay != 1 {
		t.Errorf("state not preserved: %s day %d", loaded.Status, loaded.CurrentDay)
	}
	if len(loaded.Players) != 3 || loaded.Players[1] != -2 {
		t.Errorf("roster not preserved: %v", loaded.Players)
	}
	if loaded.Roles[1] != "Saboteur" {
		t.Errorf("roles not preserved: %v", loaded.Roles)
	}
	if ch, ok := loaded.DayChannelsFor(1); !ok || ch.VotesChannelID != 111 {
		t.Errorf("channels not preserved: %+v ok=%v", ch, ok)
	}
}

func TestRepository_SaveGameUpserts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	game := model.NewGame("orbit-run", 100, 555)
	if err := repo.SaveGame(ctx, game); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	game.AddPlayer(1)
	game.AddPlayer(2)
	game.AddPlayer(3)
	game.Start()
	if err := repo.SaveGame(ctx, game); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := repo.GetGame(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Status != model.StatusActive {
		t.Errorf("upsert did not refresh status: %s", loaded.Status)
	}

	games, err := repo.ListGames(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(games) != 1 {
		t.Errorf("expected 1 game after upsert, got %d", len(games))
	}
}

func TestRepository_GameExistsAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	exists, err := repo.GameExists(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("expected no game yet")
	}

	if err := repo.SaveGame(ctx, model.NewGame("orbit-run", 100, 555)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	exists, err = repo.GameExists(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Error("expected game to exist")
	}

	deleted, err := repo.DeleteGame(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, err = repo.DeleteGame(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report false")
	}
}

func TestRepository_ArchiveGame(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	game := model.NewGame("orbit-run", 100, 555)
	game.AddPlayer(1)
	game.AddPlayer(2)
	game.AddPlayer(3)
	game.Start()
	game.AdvanceDay()
	game.End()
	if err := repo.SaveGame(ctx, game); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := repo.ArchiveGame(ctx, game, "crew"); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	live, err := repo.GetGame(ctx, "orbit-run")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if live != nil {
		t.Error("archived game should leave the live table")
	}
}

func TestRepository_NPCRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	npc := &model.NPC{ID: -1, Name: "Captain Vesna", Profile: "stern but fair"}
	if err := repo.SaveNPC(ctx, npc); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	t.Run("case-insensitive lookup", func(t *testing.T) {
		for _, name := range []string{"Captain Vesna", "captain vesna", "CAPTAIN VESNA"} {
			got, err := repo.GetNPC(ctx, name)
			if err != nil {
				t.Fatalf("get %q failed: %v", name, err)
			}
			if got == nil || got.ID != -1 {
				t.Errorf("lookup %q: got %+v", name, got)
			}
		}
	})

	t.Run("exists is case-insensitive", func(t *testing.T) {
		exists, err := repo.NPCExists(ctx, "CAPTAIN vesna")
		if err != nil {
			t.Fatalf("exists failed: %v", err)
		}
		if !exists {
			t.Error("expected case-insensitive existence")
		}
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := repo.GetNPCByID(ctx, -1)
		if err != nil {
			t.Fatalf("get by id failed: %v", err)
		}
		if got == nil || got.Name != "Captain Vesna" {
			t.Errorf("got %+v", got)
		}

		gone, err := repo.GetNPCByID(ctx, -99)
		if err != nil {
			t.Fatalf("get by id failed: %v", err)
		}
		if gone != nil {
			t.Errorf("expected nil for missing id, got %+v", gone)
		}
	})

	t.Run("duplicate folded name rejected", func(t *testing.T) {
		dup := &model.NPC{ID: -2, Name: "captain VESNA"}
		if err := repo.SaveNPC(ctx, dup); err == nil {
			t.Error("expected unique index violation")
		}
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.DeleteNPC(ctx, -1)
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !deleted {
			t.Error("expected delete to report true")
		}

		deleted, err = repo.DeleteNPC(ctx, -1)
		if err != nil {
			t.Fatalf("second delete failed: %v", err)
		}
		if deleted {
			t.Error("expected second delete to report false")
		}
	})
}

func TestRepository_LoadAllocator(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("empty table starts at -1", func(t *testing.T) {
		alloc, err := repo.LoadAllocator(ctx)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got := alloc.Next(); got != -1 {
			t.Errorf("expected -1, got %d", got)
		}
	})

	if err := repo.SaveNPC(ctx, &model.NPC{ID: -1, Name: "Vesna"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.SaveNPC(ctx, &model.NPC{ID: -7, Name: "Mirek"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	t.Run("advances past the minimum stored id", func(t *testing.T) {
		alloc, err := repo.LoadAllocator(ctx)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got := alloc.Next(); got != -8 {
			t.Errorf("expected -8, got %d", got)
		}
	})
}
