package repository

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
)

// Repository: the Solaris game directory.
type Repository struct {
	db *gorm.DB
}

// New creates a Repository.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates or updates the directory tables.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}
	if err := r.db.WithContext(ctx).AutoMigrate(
		&GameRecord{},
		&NPCRecord{},
		&GameArchive{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// FoldName case-folds an NPC or game name for comparison.
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// SaveGame upserts the game by name, refreshing the status column and the
// JSON document.
func (r *Repository) SaveGame(ctx context.Context, game *model.Game) error {
	doc, err := json.Marshal(game)
	if err != nil {
		return cerrors.DatabaseError{Operation: "game_marshal", Err: err}
	}

	record := GameRecord{
		Name:     game.Name,
		Status:   string(game.Status),
		Document: string(doc),
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "document", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return cerrors.DatabaseError{Operation: "game_save", Err: err}
	}
	return nil
}

// GetGame loads a game by name. Returns nil when it does not exist.
func (r *Repository) GetGame(ctx context.Context, name string) (*model.Game, error) {
	var record GameRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, cerrors.DatabaseError{Operation: "game_get", Err: err}
	}

	var game model.Game
	if err := json.Unmarshal([]byte(record.Document), &game); err != nil {
		return nil, cerrors.DatabaseError{Operation: "game_unmarshal", Err: err}
	}
	return &game, nil
}

// GameExists reports whether a game with the name exists.
func (r *Repository) GameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&GameRecord{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, cerrors.DatabaseError{Operation: "game_exists", Err: err}
	}
	return count > 0, nil
}

// DeleteGame removes the game row. Returns false when nothing was deleted.
func (r *Repository) DeleteGame(ctx context.Context, name string) (bool, error) {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&GameRecord{})
	if res.Error != nil {
		return false, cerrors.DatabaseError{Operation: "game_delete", Err: res.Error}
	}
	return res.RowsAffected > 0, nil
}

// ListGames returns every stored game, newest first.
func (r *Repository) ListGames(ctx context.Context) ([]*model.Game, error) {
	var records []GameRecord
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, cerrors.DatabaseError{Operation: "game_list", Err: err}
	}

	games := make([]*model.Game, 0, len(records))
	for _, record := range records {
		var game model.Game
		if err := json.Unmarshal([]byte(record.Document), &game); err != nil {
			return nil, cerrors.DatabaseError{Operation: "game_unmarshal", Err: err}
		}
		games = append(games, &game)
	}
	return games, nil
}

// ArchiveGame snapshots an ended game into the archive table and drops the
// live row.
func (r *Repository) ArchiveGame(ctx context.Context, game *model.Game, winner string) error {
	doc, err := json.Marshal(game)
	if err != nil {
		return cerrors.DatabaseError{Operation: "archive_marshal", Err: err}
	}

	archive := GameArchive{
		Name:     game.Name,
		Winner:   winner,
		Days:     game.CurrentDay,
		Document: string(doc),
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archive).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", game.Name).Delete(&GameRecord{}).Error
	})
	if err != nil {
		return cerrors.DatabaseError{Operation: "game_archive", Err: err}
	}
	return nil
}

// SaveNPC inserts an NPC row. The caller allocates the ID.
func (r *Repository) SaveNPC(ctx context.Context, npc *model.NPC) error {
	record := NPCRecord{
		ID:         npc.ID,
		Name:       npc.Name,
		NameFolded: FoldName(npc.Name),
		Profile:    npc.Profile,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return cerrors.DatabaseError{Operation: "npc_save", Err: err}
	}
	return nil
}

// GetNPC looks an NPC up by name, case-insensitively. Returns nil when it
// does not exist.
func (r *Repository) GetNPC(ctx context.Context, name string) (*model.NPC, error) {
	var record NPCRecord
	err := r.db.WithContext(ctx).Where("name_folded = ?", FoldName(name)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, cerrors.DatabaseError{Operation: "npc_get", Err: err}
	}
	return &model.NPC{ID: record.ID, Name: record.Name, Profile: record.Profile}, nil
}

// GetNPCByID looks an NPC up by its id. Returns nil when it does not exist.
func (r *Repository) GetNPCByID(ctx context.Context, id int64) (*model.NPC, error) {
	var record NPCRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, cerrors.DatabaseError{Operation: "npc_get_by_id", Err: err}
	}
	return &model.NPC{ID: record.ID, Name: record.Name, Profile: record.Profile}, nil
}

// NPCExists reports whether an NPC with the name exists, case-insensitively.
func (r *Repository) NPCExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&NPCRecord{}).
		Where("name_folded = ?", FoldName(name)).Count(&count).Error
	if err != nil {
		return false, cerrors.DatabaseError{Operation: "npc_exists", Err: err}
	}
	return count > 0, nil
}

// DeleteNPC removes the NPC row. Returns false when nothing was deleted.
func (r *Repository) DeleteNPC(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&NPCRecord{})
	if res.Error != nil {
		return false, cerrors.DatabaseError{Operation: "npc_delete", Err: res.Error}
	}
	return res.RowsAffected > 0, nil
}

// ListNPCs returns every NPC, most negative id last (creation order first).
func (r *Repository) ListNPCs(ctx context.Context) ([]*model.NPC, error) {
	var records []NPCRecord
	err := r.db.WithContext(ctx).Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, cerrors.DatabaseError{Operation: "npc_list", Err: err}
	}

	npcs := make([]*model.NPC, 0, len(records))
	for _, record := range records {
		npcs = append(npcs, &model.NPC{ID: record.ID, Name: record.Name, Profile: record.Profile})
	}
	return npcs, nil
}

// MinNPCID returns the smallest (most negative) stored NPC id, or 0 when the
// table is empty. Used to rewind the allocator on startup.
func (r *Repository) MinNPCID(ctx context.Context) (int64, error) {
	var minID *int64
	err := r.db.WithContext(ctx).Model(&NPCRecord{}).
		Select("MIN(id)").Scan(&minID).Error
	if err != nil {
		return 0, cerrors.DatabaseError{Operation: "npc_min_id", Err: err}
	}
	if minID == nil {
		return 0, nil
	}
	return *minID, nil
}

// LoadAllocator builds an NPC id allocator advanced past every stored id.
func (r *Repository) LoadAllocator(ctx context.Context) (*model.IDAllocator, error) {
	minID, err := r.MinNPCID(ctx)
	if err != nil {
		return nil, err
	}
	alloc := model.NewIDAllocator()
	alloc.AdvancePast(minID)
	return alloc, nil
}
