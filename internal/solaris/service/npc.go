package service

import (
	"context"
	"log/slog"
	"sync"

	serrors "github.com/css-solaris/solaris-bot-go/internal/solaris/errors"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/gamelogic"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/repository"
)

// NPCService manages moderator-controlled characters. It owns the negative
// id allocator; a mutex keeps allocation single-writer.
type NPCService struct {
	repo   *repository.Repository
	games  *ModeratorService
	logger *slog.Logger

	mu    sync.Mutex
	alloc *model.IDAllocator
}

// NewNPCService creates an NPCService with an allocator rewound past every
// persisted id.
func NewNPCService(
	ctx context.Context,
	repo *repository.Repository,
	games *ModeratorService,
	logger *slog.Logger,
) (*NPCService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	alloc, err := repo.LoadAllocator(ctx)
	if err != nil {
		return nil, err
	}

	return &NPCService{
		repo:   repo,
		games:  games,
		logger: logger,
		alloc:  alloc,
	}, nil
}

// CreateNPC registers a new NPC with a freshly allocated negative id.
// Names are unique case-insensitively.
func (s *NPCService) CreateNPC(ctx context.Context, name string, profile string) (*model.NPC, error) {
	exists, err := s.repo.NPCExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, serrors.NPCAlreadyExistsError{Name: name}
	}

	s.mu.Lock()
	id := s.alloc.Next()
	s.mu.Unlock()

	npc := &model.NPC{ID: id, Name: name, Profile: profile}
	if err := s.repo.SaveNPC(ctx, npc); err != nil {
		return nil, err
	}

	s.logger.Info("npc_created", "npc", name, "npc_id", id)
	return npc, nil
}

// GetNPC looks an NPC up by name, case-insensitively.
func (s *NPCService) GetNPC(ctx context.Context, name string) (*model.NPC, error) {
	npc, err := s.repo.GetNPC(ctx, name)
	if err != nil {
		return nil, err
	}
	if npc == nil {
		return nil, serrors.NPCNotFoundError{Name: name}
	}
	return npc, nil
}

// ListNPCs returns every registered NPC.
func (s *NPCService) ListNPCs(ctx context.Context) ([]*model.NPC, error) {
	return s.repo.ListNPCs(ctx)
}

// DeleteNPC decommissions an NPC and scrubs it from every game roster and
// role map.
func (s *NPCService) DeleteNPC(ctx context.Context, name string) error {
	npc, err := s.GetNPC(ctx, name)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteNPC(ctx, npc.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return serrors.NPCNotFoundError{Name: name}
	}

	if err := s.scrubFromGames(ctx, npc.ID); err != nil {
		return err
	}

	s.logger.Info("npc_deleted", "npc", name, "npc_id", npc.ID)
	return nil
}

func (s *NPCService) scrubFromGames(ctx context.Context, npcID int64) error {
	games, err := s.repo.ListGames(ctx)
	if err != nil {
		return err
	}

	for _, game := range games {
		touched := game.RemovePlayer(npcID)

		for i, id := range game.EliminatedPlayers {
			if id == npcID {
				game.EliminatedPlayers = append(game.EliminatedPlayers[:i], game.EliminatedPlayers[i+1:]...)
				touched = true
				break
			}
		}
		if _, ok := game.Roles[npcID]; ok {
			delete(game.Roles, npcID)
			touched = true
		}

		if !touched {
			continue
		}
		if err := s.games.persist(ctx, game); err != nil {
			return err
		}
		s.logger.Info("npc_scrubbed_from_game", "game", game.Name, "npc_id", npcID)
	}
	return nil
}

// Vote casts a ballot on behalf of an NPC, resolved by name.
func (s *NPCService) Vote(
	ctx context.Context,
	gameName string,
	npcName string,
	target gamelogic.Target,
	names map[int64]string,
) (string, error) {
	npc, err := s.GetNPC(ctx, npcName)
	if err != nil {
		return "", err
	}
	if names == nil {
		names = map[int64]string{}
	}
	if _, ok := names[npc.ID]; !ok {
		names[npc.ID] = npc.Name
	}
	return s.games.Vote(ctx, gameName, npc.ID, target, names)
}

// JoinGame signs an NPC up for a game by name.
func (s *NPCService) JoinGame(ctx context.Context, gameName string, npcName string) (*model.Game, *model.NPC, error) {
	npc, err := s.GetNPC(ctx, npcName)
	if err != nil {
		return nil, nil, err
	}
	game, err := s.games.Join(ctx, gameName, npc.ID)
	if err != nil {
		return nil, nil, err
	}
	return game, npc, nil
}
