// Package middleware provides HTTP middleware components for common cross-cutting
// concerns in web applications. It offers type-safe, composable middleware that
// integrates with the foundation framework's handler.Context interface.
//
// # Available Middleware
//
// This package includes the following middleware:
//
//   - BodyLimit: Restricts request body size to prevent resource exhaustion
//   - CORS: Handles Cross-Origin Resource Sharing headers and preflight requests
//   - Logging: Logs HTTP request and response details with structured logging
//   - RateLimit: Limits requests per key through a ratelimiter.RateLimiter
//   - RequestID: Generates unique request identifiers for tracing
//   - SecurityHeaders: Sets security-focused HTTP response headers
//
// The package has no client IP, fingerprint, i18n, JWT or session middleware.
//
// # Common Patterns
//
// All middleware follow consistent patterns:
//
//   - Generic functions with handler.Context type parameters
//   - Basic constructor functions (e.g., RequestID[C](), CORS[C]())
//   - Advanced WithConfig constructors for custom configuration
//   - Context helper functions for retrieving values (e.g., GetRequestID())
//   - Optional skip conditions
//
// # Basic Usage
//
// Most middleware can be used with minimal configuration:
//
//	import "github.com/dmitrymomot/execkit/middleware"
//
//	// Basic usage with default configuration
//	app.Use(middleware.RequestID[*YourContext]())
//	app.Use(middleware.Logging[*YourContext]())
//	app.Use(middleware.SecurityHeaders[*YourContext]())
//
//	// Retrieve values in handlers
//	func handler(ctx *YourContext) handler.Response {
//		if requestID, ok := middleware.GetRequestID(ctx); ok {
//			// Use request ID for logging
//		}
//		return response.JSON(map[string]any{"status": "ok"})
//	}
//
// # Advanced Configuration
//
// Use WithConfig constructors for advanced customization:
//
//	app.Use(middleware.SecurityHeadersWithConfig[*YourContext](middleware.SecurityHeadersConfig{
//		ContentTypeOptions: "nosniff",
//		FrameOptions:       "SAMEORIGIN",
//		Skip: func(ctx handler.Context) bool {
//			return strings.HasPrefix(ctx.Request().URL.Path, "/health")
//		},
//	}))
//
// # Documentation
//
// For detailed configuration options, examples, and API documentation for each
// middleware, see the individual middleware source files or use go doc:
//
//	go doc github.com/dmitrymomot/execkit/middleware.CORS
//	go doc github.com/dmitrymomot/execkit/middleware.RateLimit
//	go doc -all github.com/dmitrymomot/execkit/middleware
package middleware
