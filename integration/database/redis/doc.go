// Package redis defines sentinel errors for Redis connectivity.
//
// The package holds error variables only. It does not create clients,
// retry connections or run health checks; clients are built with
// github.com/redis/go-redis/v9 directly.
//
// # Error Handling
//
// Package defines specific errors for reliable error handling:
//
//   - ErrFailedToParseRedisConnString: Invalid Redis connection URL
//   - ErrRedisNotReady: Redis did not become ready in time
//   - ErrEmptyConnectionURL: Missing connection URL
//   - ErrHealthcheckFailed: Health check ping failed
package redis
