package redis

import (
	"context"
	"log/slog"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
	"github.com/css-solaris/solaris-bot-go/internal/common/valkeyx"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/gamelogic"
)

// BallotStore keeps the current day's ballots in a Valkey hash, one field per
// voter id holding the JSON ballot. A cast touches only its own field, so
// concurrent voters never clobber each other. A repeat cast by the same voter
// overwrites the earlier ballot; the TTL is refreshed on every write.
type BallotStore struct {
	client valkey.Client
	logger *slog.Logger
}

// NewBallotStore creates a BallotStore.
func NewBallotStore(client valkey.Client, logger *slog.Logger) *BallotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BallotStore{
		client: client,
		logger: logger,
	}
}

// Snapshot reads the day's ballots. Returns an empty map when none exist.
func (s *BallotStore) Snapshot(ctx context.Context, gameName string, day int) (map[int64]gamelogic.Target, error) {
	key := BallotKey(gameName, day)

	cmd := s.client.B().Hgetall().Key(key).Build()
	fields, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		if valkeyx.IsNil(err) {
			return map[int64]gamelogic.Target{}, nil
		}
		return nil, cerrors.RedisError{Operation: "ballot_get", Err: err}
	}

	ballots := make(map[int64]gamelogic.Target, len(fields))
	for field, raw := range fields {
		voterID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, cerrors.RedisError{Operation: "ballot_field_parse", Err: err}
		}
		var target gamelogic.Target
		if err := json.Unmarshal([]byte(raw), &target); err != nil {
			return nil, cerrors.RedisError{Operation: "ballot_unmarshal", Err: err}
		}
		ballots[voterID] = target
	}
	return ballots, nil
}

// Cast records one voter's ballot and returns the updated ballot set. The
// write is a single HSET on the voter's own field.
func (s *BallotStore) Cast(ctx context.Context, gameName string, day int, voterID int64, target gamelogic.Target) (map[int64]gamelogic.Target, error) {
	key := BallotKey(gameName, day)

	raw, err := json.Marshal(target)
	if err != nil {
		return nil, cerrors.RedisError{Operation: "ballot_marshal", Err: err}
	}

	field := strconv.FormatInt(voterID, 10)
	setCmd := s.client.B().Hset().Key(key).FieldValue().FieldValue(field, string(raw)).Build()
	if err := s.client.Do(ctx, setCmd).Error(); err != nil {
		return nil, cerrors.RedisError{Operation: "ballot_save", Err: err}
	}

	expireCmd := s.client.B().Expire().Key(key).Seconds(int64(config.BallotTTL.Seconds())).Build()
	if err := s.client.Do(ctx, expireCmd).Error(); err != nil {
		return nil, cerrors.RedisError{Operation: "ballot_expire", Err: err}
	}

	s.logger.Debug("ballot_cast",
		"game", gameName, "day", day, "voter_id", voterID, "kind", string(target.Kind))
	return s.Snapshot(ctx, gameName, day)
}

// Clear drops the day's ballots. Called when the day ends.
func (s *BallotStore) Clear(ctx context.Context, gameName string, day int) error {
	key := BallotKey(gameName, day)

	if err := valkeyx.DeleteKeys(ctx, s.client, key); err != nil {
		return cerrors.RedisError{Operation: "ballot_clear", Err: err}
	}
	s.logger.Debug("ballot_cleared", "game", gameName, "day", day)
	return nil
}
