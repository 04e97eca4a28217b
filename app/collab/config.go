package collab

import "github.com/dmitrymomot/execkit/core/server"

// Config holds the collaborator's environment-driven configuration. Server
// carries the HTTP listener's address and timeouts; see core/server.Config
// for its env tags and defaults.
type Config struct {
	Server server.Config
}
