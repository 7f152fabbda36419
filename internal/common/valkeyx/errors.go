package valkeyx

import (
	cerrors "github.com/css-solaris/solaris-bot-go/internal/common/errors"
)

// WrapRedisError wraps a Redis failure in the shared error type.
func WrapRedisError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return cerrors.RedisError{Operation: operation, Err: err}
}
