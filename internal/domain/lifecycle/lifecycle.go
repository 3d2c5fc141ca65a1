// Package lifecycle holds shared timing constants for startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and infrastructure clients.
const DefaultTimeout = 10 * time.Second
