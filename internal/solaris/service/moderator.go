// Package service drives the Solaris game lifecycle: signup, start, voting,
// day resolution and game end.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/css-solaris/solaris-bot-go/internal/common/messageprovider"
	"github.com/css-solaris/solaris-bot-go/internal/common/processinglock"
	"github.com/css-solaris/solaris-bot-go/internal/common/textutil"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	serrors "github.com/css-solaris/solaris-bot-go/internal/solaris/errors"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/gamelogic"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/messages"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
	solredis "github.com/css-solaris/solaris-bot-go/internal/solaris/redis"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/repository"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/role"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/security"
)

// ModeratorService owns all game state transitions. Every mutating operation
// runs under the per-game processing lock so read-modify-write cycles never
// interleave, and state is persisted before any announcement is returned.
type ModeratorService struct {
	repo    *repository.Repository
	cache   *solredis.GameCache
	ballots *solredis.BallotStore
	lock    *processinglock.Service
	access  *security.AccessControl
	msgs    *messageprovider.Provider
	logger  *slog.Logger
	newRand func() *rand.Rand
}

// NewModeratorService creates a ModeratorService. newRand supplies the rng
// for role deals; pass nil for a time-seeded default.
func NewModeratorService(
	repo *repository.Repository,
	cache *solredis.GameCache,
	ballots *solredis.BallotStore,
	lock *processinglock.Service,
	access *security.AccessControl,
	msgs *messageprovider.Provider,
	logger *slog.Logger,
	newRand func() *rand.Rand,
) *ModeratorService {
	if logger == nil {
		logger = slog.Default()
	}
	if newRand == nil {
		newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &ModeratorService{
		repo:    repo,
		cache:   cache,
		ballots: ballots,
		lock:    lock,
		access:  access,
		msgs:    msgs,
		logger:  logger,
		newRand: newRand,
	}
}

// CreateGame registers a new game in signup.
func (s *ModeratorService) CreateGame(ctx context.Context, name string, creatorID int64, signupThreadID int64) (*model.Game, error) {
	exists, err := s.repo.GameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, serrors.GameAlreadyExistsError{Name: name}
	}

	game := model.NewGame(name, creatorID, signupThreadID)
	if err := s.persist(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game_created", "game", name, "creator_id", creatorID)
	return game, nil
}

// GetGame loads a game, preferring the cache.
func (s *ModeratorService) GetGame(ctx context.Context, name string) (*model.Game, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, name)
		if err != nil {
			s.logger.Warn("game_cache_read_failed", "game", name, "err", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	game, err := s.repo.GetGame(ctx, name)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, serrors.GameNotFoundError{Name: name}
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, game); err != nil {
			s.logger.Warn("game_cache_fill_failed", "game", name, "err", err)
		}
	}
	return game, nil
}

// ListGames returns every stored game.
func (s *ModeratorService) ListGames(ctx context.Context) ([]*model.Game, error) {
	return s.repo.ListGames(ctx)
}

// Join adds a player during signup.
func (s *ModeratorService) Join(ctx context.Context, gameName string, playerID int64) (*model.Game, error) {
	return s.withLock(ctx, gameName, func(game *model.Game) error {
		if game.Status != model.StatusSignup {
			return serrors.GameNotInSignupError{Name: gameName, Status: string(game.Status)}
		}
		if !game.AddPlayer(playerID) {
			return serrors.PlayerAlreadyJoinedError{Name: gameName, PlayerID: playerID}
		}
		return nil
	})
}

// Leave removes a player during signup.
func (s *ModeratorService) Leave(ctx context.Context, gameName string, playerID int64) (*model.Game, error) {
	return s.withLock(ctx, gameName, func(game *model.Game) error {
		if game.Status != model.StatusSignup {
			return serrors.GameNotInSignupError{Name: gameName, Status: string(game.Status)}
		}
		if !game.RemovePlayer(playerID) {
			return serrors.PlayerNotInGameError{Name: gameName, PlayerID: playerID}
		}
		return nil
	})
}

// StartGame deals roles and opens day 1 with its channel bundle.
func (s *ModeratorService) StartGame(ctx context.Context, gameName string, actorID int64, day1 model.DayChannels) (*model.Game, error) {
	return s.withLock(ctx, gameName, func(game *model.Game) error {
		if err := s.access.RequireManage(game, actorID); err != nil {
			return err
		}
		if game.Status != model.StatusSignup {
			return serrors.GameNotInSignupError{Name: gameName, Status: string(game.Status)}
		}
		if len(game.Players) < role.MinPlayers {
			return serrors.NotEnoughPlayersError{
				Name:    gameName,
				Have:    len(game.Players),
				Minimum: role.MinPlayers,
			}
		}

		roles, err := role.Assign(game.Players, s.newRand())
		if err != nil {
			return fmt.Errorf("assign roles failed: %w", err)
		}
		game.Roles = roles

		game.Start()
		game.SetDayChannels(1, day1)

		s.logger.Info("game_started", "game", gameName, "players", len(game.Players))
		return nil
	})
}

// Vote records one ballot and returns the updated live tally message.
func (s *ModeratorService) Vote(
	ctx context.Context,
	gameName string,
	voterID int64,
	target gamelogic.Target,
	names map[int64]string,
) (string, error) {
	game, err := s.GetGame(ctx, gameName)
	if err != nil {
		return "", err
	}
	if game.Status != model.StatusActive {
		return "", serrors.GameNotActiveError{Name: gameName, Status: string(game.Status)}
	}
	if err := s.checkVoter(game, voterID); err != nil {
		return "", err
	}
	if target.Kind == gamelogic.TargetCandidate && !game.IsPlayerAlive(target.Candidate) {
		return "", serrors.InvalidVoteTargetError{
			Name:   gameName,
			Target: fmt.Sprintf("%d", target.Candidate),
		}
	}

	ballots, err := s.ballots.Cast(ctx, gameName, game.CurrentDay, voterID, target)
	if err != nil {
		return "", err
	}

	return gamelogic.FormatVoteMessage(ballots, names), nil
}

func (s *ModeratorService) checkVoter(game *model.Game, voterID int64) error {
	onRoster := false
	for _, id := range game.Players {
		if id == voterID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return serrors.PlayerNotInGameError{Name: game.Name, PlayerID: voterID}
	}
	if !game.IsPlayerAlive(voterID) {
		return serrors.PlayerEliminatedError{Name: game.Name, PlayerID: voterID}
	}
	return nil
}

// DayResult: everything the gateway needs to announce a finished day.
type DayResult struct {
	Game         *model.Game
	Resolution   gamelogic.Resolution
	Winner       gamelogic.Winner
	Announcement string
	// Chunks is the announcement split to the platform message limit.
	Chunks []string
}

// EndDay resolves the current day: snapshot ballots, tally, eliminate, check
// the win condition, then either end the game or open the next day. The new
// state is committed before the announcement is returned.
func (s *ModeratorService) EndDay(
	ctx context.Context,
	gameName string,
	actorID int64,
	nextDay model.DayChannels,
	names map[int64]string,
) (*DayResult, error) {
	if err := processinglock.WrapStartProcessingError(gameName, s.lock.Start(ctx, gameName)); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.lock.Finish(context.WithoutCancel(ctx), gameName); err != nil {
			s.logger.Warn("processing_finish_failed", "game", gameName, "err", err)
		}
	}()

	game, err := s.GetGame(ctx, gameName)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireManage(game, actorID); err != nil {
		return nil, err
	}
	if game.Status != model.StatusActive {
		return nil, serrors.GameNotActiveError{Name: gameName, Status: string(game.Status)}
	}

	endedDay := game.CurrentDay

	ballots, err := s.ballots.Snapshot(ctx, gameName, endedDay)
	if err != nil {
		return nil, err
	}

	res := gamelogic.CountVotes(ballots, game.AlivePlayers())
	if res.Outcome == gamelogic.OutcomeElimination {
		game.Eliminate(res.Eliminated)
	}

	// the board only changes on an elimination day; on tie/abstain/no-vote
	// days this repeats the previous verdict and resolves to WinnerNone
	winner := gamelogic.CheckWinCondition(game.AlivePlayers(), game.Roles)

	announcement := gamelogic.FormatDayEndMessage(res, names, endedDay, game.Roles)

	if winner != gamelogic.WinnerNone {
		game.End()
		if err := s.persist(ctx, game); err != nil {
			return nil, err
		}
		s.archive(ctx, game, string(winner))
		announcement += "\n\n" + s.winMessage(winner, gameName)
	} else {
		game.AdvanceDay()
		game.SetDayChannels(game.CurrentDay, nextDay)
		if err := s.persist(ctx, game); err != nil {
			return nil, err
		}
		announcement += "\n\n" + s.msgs.Get(messages.DayStarted,
			messageprovider.P("day", game.CurrentDay),
			messageprovider.P("name", gameName),
		)
	}

	// the day is committed; a failed cleanup only leaves a TTL'd key behind
	if err := s.ballots.Clear(ctx, gameName, endedDay); err != nil {
		s.logger.Warn("ballot_clear_failed", "game", gameName, "day", endedDay, "err", err)
	}

	s.logger.Info("day_ended",
		"game", gameName, "day", endedDay,
		"outcome", string(res.Outcome), "winner", string(winner))

	return &DayResult{
		Game:         game,
		Resolution:   res,
		Winner:       winner,
		Announcement: announcement,
		Chunks:       textutil.ChunkByLines(announcement, config.MaxMessageLength),
	}, nil
}

// EndGame ends the game unconditionally and archives it.
func (s *ModeratorService) EndGame(ctx context.Context, gameName string, actorID int64) (*model.Game, error) {
	return s.withLock(ctx, gameName, func(game *model.Game) error {
		if err := s.access.RequireManage(game, actorID); err != nil {
			return err
		}
		game.End()
		return nil
	}, func(ctx context.Context, game *model.Game) {
		s.archive(ctx, game, "ended_by_moderator")
	})
}

// DeleteGame removes a game outright.
func (s *ModeratorService) DeleteGame(ctx context.Context, gameName string, actorID int64) error {
	game, err := s.GetGame(ctx, gameName)
	if err != nil {
		return err
	}
	if err := s.access.RequireManage(game, actorID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteGame(ctx, gameName)
	if err != nil {
		return err
	}
	if !deleted {
		return serrors.GameNotFoundError{Name: gameName}
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, gameName); err != nil {
			s.logger.Warn("game_cache_invalidate_failed", "game", gameName, "err", err)
		}
	}

	s.logger.Info("game_deleted", "game", gameName, "actor_id", actorID)
	return nil
}

// winMessage renders the game-over announcement from the message catalog.
func (s *ModeratorService) winMessage(winner gamelogic.Winner, gameName string) string {
	var key string
	switch winner {
	case gamelogic.WinnerCrew:
		key = messages.WinCrew
	case gamelogic.WinnerSaboteur:
		key = messages.WinSaboteur
	case gamelogic.WinnerGameOver:
		key = messages.WinGameOver
	default:
		return ""
	}
	return s.msgs.Get(key, messageprovider.P("name", gameName))
}

// withLock runs mutate on the loaded game under the processing lock and
// persists the result. Optional post hooks run after the commit.
func (s *ModeratorService) withLock(
	ctx context.Context,
	gameName string,
	mutate func(*model.Game) error,
	post ...func(context.Context, *model.Game),
) (*model.Game, error) {
	if err := processinglock.WrapStartProcessingError(gameName, s.lock.Start(ctx, gameName)); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.lock.Finish(context.WithoutCancel(ctx), gameName); err != nil {
			s.logger.Warn("processing_finish_failed", "game", gameName, "err", err)
		}
	}()

	game, err := s.GetGame(ctx, gameName)
	if err != nil {
		return nil, err
	}
	if err := mutate(game); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, game); err != nil {
		return nil, err
	}
	for _, fn := range post {
		fn(ctx, game)
	}
	return game, nil
}

// archive moves an ended game to the archive table and drops it from the
// cache. Archive failures are logged, not surfaced; the ended state is
// already committed.
func (s *ModeratorService) archive(ctx context.Context, game *model.Game, winner string) {
	if err := s.repo.ArchiveGame(ctx, game, winner); err != nil {
		s.logger.Warn("game_archive_failed", "game", game.Name, "err", err)
		return
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, game.Name); err != nil {
			s.logger.Warn("game_cache_invalidate_failed", "game", game.Name, "err", err)
		}
	}
}

// persist writes the game through the directory and the cache.
func (s *ModeratorService) persist(ctx context.Context, game *model.Game) error {
	if err := s.repo.SaveGame(ctx, game); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, game); err != nil {
			s.logger.Warn("game_cache_write_failed", "game", game.Name, "err", err)
		}
	}
	return nil
}
