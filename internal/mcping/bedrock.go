package mcping

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sandertv/go-raknet"

	"github.com/wintermist/mcpresence/internal/domain"
)

// BedrockPinger probes Bedrock edition servers with a RakNet
// unconnected ping.
type BedrockPinger struct {
	ping func(ctx context.Context, address string) ([]byte, error)
}

// NewBedrockPinger returns a pinger backed by go-raknet.
func NewBedrockPinger() *BedrockPinger {
	return &BedrockPinger{ping: raknet.PingContext}
}

// Probe pings the target once, bounded by ctx.
func (p *BedrockPinger) Probe(ctx context.Context, tgt domain.Target) domain.Snapshot {
	snap := domain.Snapshot{Time: time.Now().UTC()}

	start := time.Now()
	data, err := p.ping(ctx, tgt.String())
	if err != nil {
		return snap
	}
	return decodeBedrockPong(snap, data, time.Since(start))
}

// decodeBedrockPong parses the semicolon-separated pong record:
// edition;motd;protocol;version;online;max;serverID;sub-motd;gamemode;...
func decodeBedrockPong(snap domain.Snapshot, data []byte, latency time.Duration) domain.Snapshot {
	fields := strings.Split(string(data), ";")
	if len(fields) < 6 {
		return snap
	}

	online, err := strconv.Atoi(fields[4])
	if err != nil {
		return snap
	}
	max, err := strconv.Atoi(fields[5])
	if err != nil {
		return snap
	}

	snap.Reachable = true
	snap.Latency = latency
	snap.MOTD = fields[1]
	snap.Version = fields[3]
	snap.OnlinePlayers = online
	snap.MaxPlayers = max
	return snap
}
