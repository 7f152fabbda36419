// Package repository is the game directory: games, NPCs and finished-game
// archives in a relational store.
package repository

import "time"

// GameRecord: one game row. The full state machine snapshot lives in the
// JSON document column; the extracted columns exist for lookups and listing.
type GameRecord struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Status    string    `gorm:"column:status;not null;index" json:"status"`
	Document  string    `gorm:"column:document;type:jsonb;not null" json:"document"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (GameRecord) TableName() string { return "solaris_games" }

// NPCRecord: one NPC row. IDs are negative and assigned by the allocator,
// never by the database. NameFolded holds the case-folded name backing the
// case-insensitive uniqueness rule.
type NPCRecord struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	NameFolded string    `gorm:"column:name_folded;not null;uniqueIndex" json:"nameFolded"`
	Profile    string    `gorm:"column:profile" json:"profile"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"createdAt"`
}

func (NPCRecord) TableName() string { return "solaris_npcs" }

// GameArchive: terminal snapshot of an ended game.
type GameArchive struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:name;not null;index" json:"name"`
	Winner     string    `gorm:"column:winner;not null;index" json:"winner"`
	Days       int       `gorm:"column:days;not null;default:0" json:"days"`
	Document   string    `gorm:"column:document;type:jsonb;not null" json:"document"`
	ArchivedAt time.Time `gorm:"column:archived_at;not null;autoCreateTime" json:"archivedAt"`
}

func (GameArchive) TableName() string { return "solaris_game_archives" }
