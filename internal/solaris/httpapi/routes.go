// Package httpapi exposes the moderator operations over HTTP for the
// platform gateway.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
	"github.com/css-solaris/solaris-bot-go/internal/common/health"
	commonhttputil "github.com/css-solaris/solaris-bot-go/internal/common/httputil"
	solconfig "github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	serrors "github.com/css-solaris/solaris-bot-go/internal/solaris/errors"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/gamelogic"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/role"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/service"
)

const (
	apiErrorGameNotFound      = "GAME_NOT_FOUND"
	apiErrorGameAlreadyExists = "GAME_ALREADY_EXISTS"
	apiErrorGameNotActive     = "GAME_NOT_ACTIVE"
	apiErrorGameNotInSignup   = "GAME_NOT_IN_SIGNUP"
	apiErrorNotEnoughPlayers  = "NOT_ENOUGH_PLAYERS"
	apiErrorPlayerNotInGame   = "PLAYER_NOT_IN_GAME"
	apiErrorPlayerJoined      = "PLAYER_ALREADY_JOINED"
	apiErrorPlayerEliminated  = "PLAYER_ELIMINATED"
	apiErrorInvalidVoteTarget = "INVALID_VOTE_TARGET"
	apiErrorNPCNotFound       = "NPC_NOT_FOUND"
	apiErrorNPCAlreadyExists  = "NPC_ALREADY_EXISTS"
	apiErrorPermissionDenied  = "PERMISSION_DENIED"
	apiErrorBusy              = "GAME_BUSY"
	apiErrorInvalidRequest    = "INVALID_REQUEST"
	apiErrorInternalError     = "INTERNAL_ERROR"
)

// Register mounts the moderator API on mux.
func Register(mux *http.ServeMux, games *service.ModeratorService, npcs *service.NPCService, logger *slog.Logger) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = commonhttputil.WriteJSON(w, http.StatusOK, health.Get())
	})

	mux.HandleFunc("GET /api/roles/distribution", func(w http.ResponseWriter, r *http.Request) {
		handleRoleDistribution(w, r, logger)
	})

	mux.HandleFunc("POST /api/game", func(w http.ResponseWriter, r *http.Request) {
		handleCreateGame(w, r, games, logger)
	})
	mux.HandleFunc("GET /api/game", func(w http.ResponseWriter, r *http.Request) {
		handleListGames(w, r, games, logger)
	})
	mux.HandleFunc("GET /api/game/{name}", func(w http.ResponseWriter, r *http.Request) {
		handleGetGame(w, r, games, logger)
	})
	mux.HandleFunc("GET /api/game/{name}/players", func(w http.ResponseWriter, r *http.Request) {
		handleGetPlayers(w, r, games, logger)
	})
	mux.HandleFunc("DELETE /api/game/{name}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteGame(w, r, games, logger)
	})
	mux.HandleFunc("POST /api/game/{name}/join", func(w http.ResponseWriter, r *http.Request) {
		handleJoin(w, r, games, logger)
	})
	mux.HandleFunc("POST /api/game/{name}/leave", func(w http.ResponseWriter, r *http.Request) {
		handleLeave(w, r, games, logger)
	})
	mux.HandleFunc("POST /api/game/{name}/start", func(w http.ResponseWriter, r *http.Request) {
		handleStartGame(w, r, games, logger)
	})
	mux.HandleFunc("POST /api/game/{name}/vote", func(w http.ResponseWriter, r *http.Request) {
		handleVote(w, r, games, logger)
	})
	mux.HandleFunc("POST /api/game/{name}/end-day", func(w http.ResponseWriter, r *http.Request) {
		handleEndDay(w, r, games, logger)
	})
	mux.HandleFunc("POST /api/game/{name}/end", func(w http.ResponseWriter, r *http.Request) {
		handleEndGame(w, r, games, logger)
	})

	mux.HandleFunc("POST /api/npc", func(w http.ResponseWriter, r *http.Request) {
		handleCreateNPC(w, r, npcs, logger)
	})
	mux.HandleFunc("GET /api/npc", func(w http.ResponseWriter, r *http.Request) {
		handleListNPCs(w, r, npcs, logger)
	})
	mux.HandleFunc("GET /api/npc/{name}", func(w http.ResponseWriter, r *http.Request) {
		handleGetNPC(w, r, npcs, logger)
	})
	mux.HandleFunc("DELETE /api/npc/{name}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteNPC(w, r, npcs, logger)
	})
	mux.HandleFunc("POST /api/npc/{name}/join", func(w http.ResponseWriter, r *http.Request) {
		handleNPCJoin(w, r, npcs, logger)
	})
	mux.HandleFunc("POST /api/npc/{name}/vote", func(w http.ResponseWriter, r *http.Request) {
		handleNPCVote(w, r, npcs, logger)
	})
}

func gameName(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("name"))
}

func handleRoleDistribution(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	players, err := strconv.Atoi(r.URL.Query().Get("players"))
	if err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "players must be an integer")
		return
	}

	dist, err := role.FormatDistribution(players)
	if err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorNotEnoughPlayers, err.Error())
		return
	}

	_ = commonhttputil.WriteJSON(w, http.StatusOK, DistributionResponse{
		Players:      players,
		Distribution: dist,
	})
}

func handleCreateGame(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req CreateGameRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > solconfig.MaxGameNameLength {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "game name required")
		return
	}

	game, err := games.CreateGame(r.Context(), req.Name, req.CreatorID, req.SignupThreadID)
	if err != nil {
		respondError(w, err, "create_game_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusCreated, toGameResponse(game))
}

func handleListGames(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	all, err := games.ListGames(r.Context())
	if err != nil {
		respondError(w, err, "list_games_failed", logger)
		return
	}

	resp := make([]GameResponse, 0, len(all))
	for _, game := range all {
		resp = append(resp, toGameResponse(game))
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, resp)
}

func handleGetGame(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	game, err := games.GetGame(r.Context(), gameName(r))
	if err != nil {
		respondError(w, err, "get_game_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, toGameResponse(game))
}

func handleGetPlayers(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	game, err := games.GetGame(r.Context(), gameName(r))
	if err != nil {
		respondError(w, err, "get_players_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, PlayersResponse{
		Players:    game.Players,
		Alive:      game.AlivePlayers(),
		Eliminated: game.EliminatedPlayers,
	})
}

func handleDeleteGame(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req ActorRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	if err := games.DeleteGame(r.Context(), gameName(r), req.ActorID); err != nil {
		respondError(w, err, "delete_game_failed", logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleJoin(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req PlayerRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	game, err := games.Join(r.Context(), gameName(r), req.PlayerID)
	if err != nil {
		respondError(w, err, "join_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, toGameResponse(game))
}

func handleLeave(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req PlayerRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	game, err := games.Leave(r.Context(), gameName(r), req.PlayerID)
	if err != nil {
		respondError(w, err, "leave_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, toGameResponse(game))
}

func handleStartGame(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req StartGameRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	game, err := games.StartGame(r.Context(), gameName(r), req.ActorID, req.Day1.toModel())
	if err != nil {
		respondError(w, err, "start_game_failed", logger)
		return
	}

	dist, err := role.FormatDistribution(len(game.Players))
	if err != nil {
		respondError(w, err, "start_game_distribution_failed", logger)
		return
	}

	assignments := make(map[string]RoleCard, len(game.Roles))
	for id, roleName := range game.Roles {
		info := role.Lookup(roleName)
		assignments[strconv.FormatInt(id, 10)] = RoleCard{
			Role:        info.Name,
			Team:        string(info.Team),
			Emoji:       info.Emoji,
			Description: info.Description,
			Color:       info.Color,
		}
	}

	_ = commonhttputil.WriteJSON(w, http.StatusOK, StartGameResponse{
		Game:         toGameResponse(game),
		Distribution: dist,
		Assignments:  assignments,
	})
}

func handleVote(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req VoteRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	var target gamelogic.Target
	switch gamelogic.TargetKind(req.Kind) {
	case gamelogic.TargetCandidate:
		target = gamelogic.CandidateTarget(req.Candidate)
	case gamelogic.TargetAbstain:
		target = gamelogic.AbstainTarget()
	case gamelogic.TargetVeto:
		target = gamelogic.VetoTarget()
	default:
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "kind must be candidate, abstain or veto")
		return
	}

	message, err := games.Vote(r.Context(), gameName(r), req.VoterID, target, parseNames(req.Names))
	if err != nil {
		respondError(w, err, "vote_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, VoteResponse{Message: message})
}

func handleEndDay(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req EndDayRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	result, err := games.EndDay(r.Context(), gameName(r), req.ActorID, req.NextDay.toModel(), parseNames(req.Names))
	if err != nil {
		respondError(w, err, "end_day_failed", logger)
		return
	}

	resp := EndDayResponse{
		Game:         toGameResponse(result.Game),
		Outcome:      string(result.Resolution.Outcome),
		TiedWith:     result.Resolution.TiedWith,
		Winner:       string(result.Winner),
		Announcement: result.Announcement,
		Chunks:       result.Chunks,
	}
	if result.Resolution.Outcome == gamelogic.OutcomeElimination {
		eliminated := result.Resolution.Eliminated
		resp.Eliminated = &eliminated
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, resp)
}

func handleEndGame(w http.ResponseWriter, r *http.Request, games *service.ModeratorService, logger *slog.Logger) {
	var req ActorRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	game, err := games.EndGame(r.Context(), gameName(r), req.ActorID)
	if err != nil {
		respondError(w, err, "end_game_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, toGameResponse(game))
}

func handleCreateNPC(w http.ResponseWriter, r *http.Request, npcs *service.NPCService, logger *slog.Logger) {
	var req CreateNPCRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "npc name required")
		return
	}

	npc, err := npcs.CreateNPC(r.Context(), req.Name, req.Profile)
	if err != nil {
		respondError(w, err, "create_npc_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusCreated, NPCResponse{ID: npc.ID, Name: npc.Name, Profile: npc.Profile})
}

func handleListNPCs(w http.ResponseWriter, r *http.Request, npcs *service.NPCService, logger *slog.Logger) {
	all, err := npcs.ListNPCs(r.Context())
	if err != nil {
		respondError(w, err, "list_npcs_failed", logger)
		return
	}

	resp := make([]NPCResponse, 0, len(all))
	for _, npc := range all {
		resp = append(resp, NPCResponse{ID: npc.ID, Name: npc.Name, Profile: npc.Profile})
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, resp)
}

func handleGetNPC(w http.ResponseWriter, r *http.Request, npcs *service.NPCService, logger *slog.Logger) {
	npc, err := npcs.GetNPC(r.Context(), gameName(r))
	if err != nil {
		respondError(w, err, "get_npc_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, NPCResponse{ID: npc.ID, Name: npc.Name, Profile: npc.Profile})
}

func handleDeleteNPC(w http.ResponseWriter, r *http.Request, npcs *service.NPCService, logger *slog.Logger) {
	if err := npcs.DeleteNPC(r.Context(), gameName(r)); err != nil {
		respondError(w, err, "delete_npc_failed", logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleNPCJoin(w http.ResponseWriter, r *http.Request, npcs *service.NPCService, logger *slog.Logger) {
	var req NPCJoinRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	req.Game = strings.TrimSpace(req.Game)
	if req.Game == "" {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "game name required")
		return
	}

	game, npc, err := npcs.JoinGame(r.Context(), req.Game, gameName(r))
	if err != nil {
		respondError(w, err, "npc_join_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, NPCJoinResponse{
		Game: toGameResponse(game),
		NPC:  NPCResponse{ID: npc.ID, Name: npc.Name, Profile: npc.Profile},
	})
}

func handleNPCVote(w http.ResponseWriter, r *http.Request, npcs *service.NPCService, logger *slog.Logger) {
	var req NPCVoteRequest
	if err := commonhttputil.ReadJSON(r, &req, solconfig.MaxRequestBodyBytes); err != nil {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, err.Error())
		return
	}

	req.Game = strings.TrimSpace(req.Game)
	if req.Game == "" {
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "game name required")
		return
	}

	var target gamelogic.Target
	switch gamelogic.TargetKind(req.Kind) {
	case gamelogic.TargetCandidate:
		target = gamelogic.CandidateTarget(req.Candidate)
	case gamelogic.TargetAbstain:
		target = gamelogic.AbstainTarget()
	case gamelogic.TargetVeto:
		target = gamelogic.VetoTarget()
	default:
		_ = commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, apiErrorInvalidRequest, "kind must be candidate, abstain or veto")
		return
	}

	message, err := npcs.Vote(r.Context(), req.Game, gameName(r), target, parseNames(req.Names))
	if err != nil {
		respondError(w, err, "npc_vote_failed", logger)
		return
	}
	_ = commonhttputil.WriteJSON(w, http.StatusOK, VoteResponse{Message: message})
}

func respondError(w http.ResponseWriter, err error, logEvent string, logger *slog.Logger) {
	if !serrors.IsExpectedUserBehavior(err) {
		logger.Error(logEvent, "err", err)
	}

	status := http.StatusInternalServerError
	code := apiErrorInternalError

	var gameNotFound serrors.GameNotFoundError
	var gameExists serrors.GameAlreadyExistsError
	var notActive serrors.GameNotActiveError
	var notSignup serrors.GameNotInSignupError
	var tooFew serrors.NotEnoughPlayersError
	var notInGame serrors.PlayerNotInGameError
	var alreadyJoined serrors.PlayerAlreadyJoinedError
	var eliminated serrors.PlayerEliminatedError
	var badTarget serrors.InvalidVoteTargetError
	var npcNotFound serrors.NPCNotFoundError
	var npcExists serrors.NPCAlreadyExistsError
	var denied cerrors.PermissionDeniedError
	var locked cerrors.LockError
	var malformed cerrors.MalformedInputError

	switch {
	case errors.As(err, &gameNotFound):
		status = http.StatusNotFound
		code = apiErrorGameNotFound
	case errors.As(err, &npcNotFound):
		status = http.StatusNotFound
		code = apiErrorNPCNotFound
	case errors.As(err, &gameExists):
		status = http.StatusConflict
		code = apiErrorGameAlreadyExists
	case errors.As(err, &npcExists):
		status = http.StatusConflict
		code = apiErrorNPCAlreadyExists
	case errors.As(err, &locked):
		status = http.StatusConflict
		code = apiErrorBusy
	case errors.As(err, &denied):
		status = http.StatusForbidden
		code = apiErrorPermissionDenied
	case errors.As(err, &notActive):
		status = http.StatusBadRequest
		code = apiErrorGameNotActive
	case errors.As(err, &notSignup):
		status = http.StatusBadRequest
		code = apiErrorGameNotInSignup
	case errors.As(err, &tooFew):
		status = http.StatusBadRequest
		code = apiErrorNotEnoughPlayers
	case errors.As(err, &notInGame):
		status = http.StatusBadRequest
		code = apiErrorPlayerNotInGame
	case errors.As(err, &alreadyJoined):
		status = http.StatusBadRequest
		code = apiErrorPlayerJoined
	case errors.As(err, &eliminated):
		status = http.StatusBadRequest
		code = apiErrorPlayerEliminated
	case errors.As(err, &badTarget):
		status = http.StatusBadRequest
		code = apiErrorInvalidVoteTarget
	case errors.As(err, &malformed):
		status = http.StatusBadRequest
		code = apiErrorInvalidRequest
	}

	_ = commonhttputil.WriteErrorJSON(w, status, code, err.Error())
}
