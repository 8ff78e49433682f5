package session

import "errors"

var (
	// ErrSessionNotFound indicates no record is registered under the identifier
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates a nil record or an empty identifier
	ErrInvalidSession = errors.New("session.invalid")

	// ErrNotManaged indicates a record that was never bound to a Manager
	ErrNotManaged = errors.New("session.not_managed")

	// ErrBadRedisURL indicates the redis connection string could not be parsed
	ErrBadRedisURL = errors.New("session.bad_redis_url")

	// ErrRedisNotReady indicates redis did not become reachable within the retry budget
	ErrRedisNotReady = errors.New("session.redis_not_ready")
)
