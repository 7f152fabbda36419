package httpapi

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	json "github.com/goccy/go-json"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/css-solaris/solaris-bot-go/internal/common/messageprovider"
	"github.com/css-solaris/solaris-bot-go/internal/common/processinglock"
	"github.com/css-solaris/solaris-bot-go/internal/common/testhelper"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/assets"
	solconfig "github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	solredis "github.com/css-solaris/solaris-bot-go/internal/solaris/redis"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/repository"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/security"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/service"
)

const testCreatorID = int64(100)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}
	repo := repository.New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	client, _ := testhelper.NewMiniredisClient(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	msgs, err := messageprovider.NewFromYAML(assets.GameMessagesYAML)
	if err != nil {
		t.Fatalf("message provider failed: %v", err)
	}

	games := service.NewModeratorService(
		repo,
		solredis.NewGameCache(client, logger),
		solredis.NewBallotStore(client, logger),
		processinglock.New(client, logger, solredis.ProcessingKey, solconfig.ProcessingLockTTL),
		security.New(solconfig.ModerationConfig{}),
		msgs,
		logger,
		func() *rand.Rand { return rand.New(rand.NewSource(7)) },
	)
	npcs, err := service.NewNPCService(context.Background(), repo, games, logger)
	if err != nil {
		t.Fatalf("npc service failed: %v", err)
	}

	mux := http.NewServeMux()
	Register(mux, games, npcs, logger)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	return resp, data
}

func createGame(t *testing.T, srv *httptest.Server, name string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game",
		`{"name":"`+name+`","creatorId":100,"signupThreadId":555}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game: status %d body %s", resp.StatusCode, body)
	}
}

func joinPlayers(t *testing.T, srv *httptest.Server, name string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game/"+name+"/join",
			`{"playerId":`+id+`}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("join %s: status %d body %s", id, resp.StatusCode, body)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestCreateGame(t *testing.T) {
	srv := newTestServer(t)
	createGame(t, srv, "orbit-run")

	t.Run("duplicate conflicts", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game",
			`{"name":"orbit-run","creatorId":100}`)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status %d body %s", resp.StatusCode, body)
		}
		if !strings.Contains(string(body), "GAME_ALREADY_EXISTS") {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("missing name rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game", `{"creatorId":100}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status %d body %s", resp.StatusCode, body)
		}
	})
}

func TestGetGame_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/game/missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "GAME_NOT_FOUND") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestGameFlow(t *testing.T) {
	srv := newTestServer(t)
	createGame(t, srv, "orbit-run")
	joinPlayers(t, srv, "orbit-run", "1", "2", "3")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/start",
		`{"actorId":100,"day1":{"votesChannelId":111,"discussionChannelId":222}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start: status %d body %s", resp.StatusCode, body)
	}

	var started StartGameResponse
	if err := json.Unmarshal(body, &started); err != nil {
		t.Fatalf("decode start response failed: %v", err)
	}
	if started.Game.Status != "active" || started.Game.CurrentDay != 1 {
		t.Errorf("unexpected game state: %+v", started.Game)
	}
	if len(started.Assignments) != 3 {
		t.Errorf("expected 3 role cards, got %d", len(started.Assignments))
	}
	if started.Distribution == "" {
		t.Error("expected a distribution summary")
	}
	if len(started.Game.Roles) != 0 {
		t.Error("roles must not leak through the game response while active")
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/vote",
		`{"voterId":1,"kind":"candidate","candidate":2,"names":{"1":"kim","2":"lee"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("vote: status %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "kim → lee") {
		t.Errorf("expected tally line in response: %s", body)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/game/orbit-run/players", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("players: status %d body %s", resp.StatusCode, body)
	}
	var roster PlayersResponse
	if err := json.Unmarshal(body, &roster); err != nil {
		t.Fatalf("decode players failed: %v", err)
	}
	if len(roster.Players) != 3 || len(roster.Alive) != 3 {
		t.Errorf("unexpected roster: %+v", roster)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/end-day",
		`{"actorId":100,"nextDay":{"votesChannelId":333},"names":{"1":"kim","2":"lee","3":"park"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("end day: status %d body %s", resp.StatusCode, body)
	}

	var ended EndDayResponse
	if err := json.Unmarshal(body, &ended); err != nil {
		t.Fatalf("decode end-day response failed: %v", err)
	}
	if ended.Outcome != "elimination" {
		t.Errorf("expected elimination, got %s", ended.Outcome)
	}
	if ended.Eliminated == nil || *ended.Eliminated != 2 {
		t.Errorf("expected player 2 eliminated, got %v", ended.Eliminated)
	}
	if len(ended.Chunks) == 0 {
		t.Error("expected announcement chunks")
	}
}

func TestVote_Validation(t *testing.T) {
	srv := newTestServer(t)
	createGame(t, srv, "orbit-run")
	joinPlayers(t, srv, "orbit-run", "1", "2", "3")
	doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/start", `{"actorId":100,"day1":{}}`)

	t.Run("unknown kind", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/vote",
			`{"voterId":1,"kind":"spoil"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status %d body %s", resp.StatusCode, body)
		}
	})

	t.Run("dead target", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/vote",
			`{"voterId":1,"kind":"candidate","candidate":99}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status %d body %s", resp.StatusCode, body)
		}
		if !strings.Contains(string(body), "INVALID_VOTE_TARGET") {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("outside voter", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/vote",
			`{"voterId":99,"kind":"abstain"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status %d body %s", resp.StatusCode, body)
		}
		if !strings.Contains(string(body), "PLAYER_NOT_IN_GAME") {
			t.Errorf("unexpected body: %s", body)
		}
	})
}

func TestStartGame_PermissionDenied(t *testing.T) {
	srv := newTestServer(t)
	createGame(t, srv, "orbit-run")
	joinPlayers(t, srv, "orbit-run", "1", "2", "3")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/start",
		`{"actorId":42,"day1":{}}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "PERMISSION_DENIED") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestRoleDistribution(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/roles/distribution?players=8", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "Saboteur") {
		t.Errorf("unexpected body: %s", body)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/roles/distribution?players=2", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("too-few players should 400, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/roles/distribution?players=abc", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("non-numeric players should 400, got %d", resp.StatusCode)
	}
}

func TestNPCRoutes(t *testing.T) {
	srv := newTestServer(t)
	createGame(t, srv, "orbit-run")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/npc",
		`{"name":"Vesna","profile":"stern but fair"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create npc: status %d body %s", resp.StatusCode, body)
	}
	var npc NPCResponse
	if err := json.Unmarshal(body, &npc); err != nil {
		t.Fatalf("decode npc failed: %v", err)
	}
	if npc.ID >= 0 {
		t.Errorf("npc id should be negative, got %d", npc.ID)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/npc", `{"name":"vesna"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate npc: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/npc/vesna/join", `{"game":"orbit-run"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("npc join: status %d body %s", resp.StatusCode, body)
	}
	var joined NPCJoinResponse
	if err := json.Unmarshal(body, &joined); err != nil {
		t.Fatalf("decode npc join failed: %v", err)
	}
	if len(joined.Game.Players) != 1 || joined.Game.Players[0] != npc.ID {
		t.Errorf("npc not on roster: %v", joined.Game.Players)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/npc/Vesna", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get npc: status %d", resp.StatusCode)
	}

	joinPlayers(t, srv, "orbit-run", "1", "2")
	doJSON(t, http.MethodPost, srv.URL+"/api/game/orbit-run/start", `{"actorId":100,"day1":{}}`)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/npc/vesna/vote",
		`{"game":"orbit-run","kind":"abstain"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("npc vote: status %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "Vesna") {
		t.Errorf("expected npc name in tally: %s", body)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/npc/vesna", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete npc: status %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/npc/vesna", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted npc should 404, got %d body %s", resp.StatusCode, body)
	}
}
