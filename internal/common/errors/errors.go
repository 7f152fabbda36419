// Package errors defines error types shared across the service.
// Infrastructure errors (redis, database, locking) live here; game-domain
// errors are defined by the solaris packages.
package errors

import (
	"errors"
	"fmt"
)

// RedisError: an error raised while talking to Redis/Valkey.
type RedisError struct {
	Operation string
	Err       error
}

func (e RedisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("redis error operation=%s", e.Operation)
	}
	return fmt.Sprintf("redis error operation=%s: %v", e.Operation, e.Err)
}

func (e RedisError) Unwrap() error { return e.Err }

// DatabaseError: an error raised by the relational store.
type DatabaseError struct {
	Operation string
	Err       error
}

func (e DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("db error operation=%s", e.Operation)
	}
	return fmt.Sprintf("db error operation=%s: %v", e.Operation, e.Err)
}

func (e DatabaseError) Unwrap() error { return e.Err }

// LockError: failure to acquire the per-game action lock.
type LockError struct {
	GameName    string
	Description string
}

func (e LockError) Error() string {
	msg := e.Description
	if msg == "" {
		msg = "failed to acquire lock"
	}
	if e.GameName != "" {
		msg = fmt.Sprintf("%s game=%s", msg, e.GameName)
	}
	return msg
}

// PermissionDeniedError: the caller may not manage the game in question.
type PermissionDeniedError struct {
	Reason string
}

func (e PermissionDeniedError) Error() string {
	if e.Reason == "" {
		return "permission denied"
	}
	return fmt.Sprintf("permission denied: %s", e.Reason)
}

// MalformedInputError: the request payload could not be interpreted.
type MalformedInputError struct {
	Message string
}

func (e MalformedInputError) Error() string { return e.Message }

// expectedUserBehaviorTypes: error types considered ordinary user mistakes.
// Checked by IsExpectedUserBehavior; domain packages extend the idea with
// their own classifier.
var expectedUserBehaviorTypes = []func() any{
	func() any { return new(PermissionDeniedError) },
	func() any { return new(MalformedInputError) },
}

// IsExpectedUserBehavior reports whether err is a mistake within the normal
// usage pattern, as opposed to an infrastructure failure. Used to pick log
// levels and user-facing replies.
func IsExpectedUserBehavior(err error) bool {
	if err == nil {
		return false
	}
	for _, targetFn := range expectedUserBehaviorTypes {
		if errors.As(err, targetFn()) {
			return true
		}
	}
	return false
}
