package processinglock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
	"github.com/css-solaris/solaris-bot-go/internal/common/valkeyx"
)

type KeyFunc func(gameName string) string

// ErrAlreadyProcessing: another action is already running for the game.
var ErrAlreadyProcessing = errors.New("already processing")

// Service serializes game actions with a Redis lock. One action per game at a
// time; the TTL guards against a crashed holder.
type Service struct {
	client  valkey.Client
	logger  *slog.Logger
	keyFunc KeyFunc
	ttl     time.Duration
}

// New creates a Service.
func New(client valkey.Client, logger *slog.Logger, keyFunc KeyFunc, ttl time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		logger:  logger,
		keyFunc: keyFunc,
		ttl:     ttl,
	}
}

// Start acquires the action lock (SET NX).
// Returns ErrAlreadyProcessing when the lock is held.
func (s *Service) Start(ctx context.Context, gameName string) error {
	key := s.keyFunc(gameName)
	cmd := s.client.B().Set().Key(key).Value("1").Nx().Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if valkeyx.IsNil(err) {
			return ErrAlreadyProcessing
		}
		return fmt.Errorf("set processing lock failed: %w", err)
	}
	s.logger.Debug("processing_started", "game", gameName)
	return nil
}

// Finish releases the action lock.
func (s *Service) Finish(ctx context.Context, gameName string) error {
	key := s.keyFunc(gameName)
	cmd := s.client.B().Del().Key(key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("delete processing lock failed: %w", err)
	}
	s.logger.Debug("processing_finished", "game", gameName)
	return nil
}

// IsProcessing reports whether the lock is currently held.
func (s *Service) IsProcessing(ctx context.Context, gameName string) (bool, error) {
	key := s.keyFunc(gameName)
	cmd := s.client.B().Exists().Key(key).Build()
	n, err := s.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, fmt.Errorf("check processing lock exists failed: %w", err)
	}
	return n > 0, nil
}

func WrapStartProcessingError(gameName string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAlreadyProcessing) {
		return cerrors.LockError{GameName: gameName, Description: "already processing"}
	}
	return cerrors.RedisError{Operation: "processing_start", Err: err}
}

func WrapFinishProcessingError(err error) error {
	if err == nil {
		return nil
	}
	return cerrors.RedisError{Operation: "processing_finish", Err: err}
}

func WrapIsProcessingError(err error) error {
	if err == nil {
		return nil
	}
	return cerrors.RedisError{Operation: "processing_exists", Err: err}
}
