// Package security decides who may manage a game.
package security

import (
	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
)

// AccessControl answers moderation permission checks: a game is managed by
// its creator or by anyone on the configured moderator allow-list.
type AccessControl struct {
	moderators map[int64]struct{}
}

// New creates an AccessControl from the moderation config.
func New(cfg config.ModerationConfig) *AccessControl {
	moderators := make(map[int64]struct{}, len(cfg.ModeratorIDs))
	for _, id := range cfg.ModeratorIDs {
		moderators[id] = struct{}{}
	}
	return &AccessControl{moderators: moderators}
}

// IsModerator reports whether the user is on the global allow-list.
func (a *AccessControl) IsModerator(userID int64) bool {
	_, ok := a.moderators[userID]
	return ok
}

// CanManage reports whether the user may run moderator actions on the game.
func (a *AccessControl) CanManage(game *model.Game, userID int64) bool {
	if game != nil && game.CreatorID == userID {
		return true
	}
	return a.IsModerator(userID)
}

// RequireManage returns a PermissionDeniedError when the user may not manage
// the game.
func (a *AccessControl) RequireManage(game *model.Game, userID int64) error {
	if a.CanManage(game, userID) {
		return nil
	}
	return cerrors.PermissionDeniedError{Reason: "only the game creator or a moderator can do that"}
}
