// Package mcping probes Minecraft servers for their current status.
//
// Probes never fail: timeouts, refused connections and malformed
// responses all collapse into an unreachable snapshot, since the
// downstream display only cares whether the server is up, not why it
// is down.
package mcping

import (
	"context"

	"github.com/wintermist/mcpresence/internal/domain"
)

// Pinger performs one status probe per call.
type Pinger interface {
	Probe(ctx context.Context, tgt domain.Target) domain.Snapshot
}

// New returns the pinger matching the target's edition.
func New(edition domain.Edition) Pinger {
	if edition == domain.EditionBedrock {
		return NewBedrockPinger()
	}
	return NewJavaPinger()
}
