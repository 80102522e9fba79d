package mcping

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/xrjr/mcutils/pkg/ping"

	"github.com/wintermist/mcpresence/internal/domain"
)

// javaStatus mirrors the server list ping JSON. The description field
// is either a plain string or a chat component object depending on the
// server implementation, so it is decoded loosely.
type javaStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
		Sample []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"sample"`
	} `json:"players"`
	Description interface{} `json:"description"`
}

// motd flattens the description field into plain text.
func (s *javaStatus) motd() string {
	switch desc := s.Description.(type) {
	case string:
		return desc
	case map[string]interface{}:
		text, _ := desc["text"].(string)
		if extra, ok := desc["extra"].([]interface{}); ok {
			for _, item := range extra {
				if part, ok := item.(map[string]interface{}); ok {
					if t, ok := part["text"].(string); ok {
						text += t
					}
				}
			}
		}
		return text
	}
	return ""
}

// JavaPinger probes Java edition servers with the server list ping.
type JavaPinger struct {
	ping func(hostname string, port int) (map[string]interface{}, int, error)
}

// NewJavaPinger returns a pinger backed by mcutils.
func NewJavaPinger() *JavaPinger {
	return &JavaPinger{
		ping: func(hostname string, port int) (map[string]interface{}, int, error) {
			return ping.Ping(hostname, port)
		},
	}
}

// Probe pings the target once. The library call has no context support,
// so it runs in its own goroutine and is abandoned when ctx expires.
func (p *JavaPinger) Probe(ctx context.Context, tgt domain.Target) domain.Snapshot {
	type pong struct {
		props   map[string]interface{}
		latency int
		err     error
	}

	ch := make(chan pong, 1)
	go func() {
		props, latency, err := p.ping(tgt.Address, tgt.Port)
		ch <- pong{props, latency, err}
	}()

	snap := domain.Snapshot{Time: time.Now().UTC()}
	select {
	case <-ctx.Done():
		return snap
	case res := <-ch:
		if res.err != nil {
			return snap
		}
		return decodeJavaStatus(snap, res.props, res.latency)
	}
}

// decodeJavaStatus converts the loosely typed ping properties into a
// snapshot. A response that doesn't decode is treated as unreachable.
func decodeJavaStatus(snap domain.Snapshot, props map[string]interface{}, latency int) domain.Snapshot {
	raw, err := sonic.Marshal(props)
	if err != nil {
		return snap
	}
	var st javaStatus
	if err := sonic.Unmarshal(raw, &st); err != nil {
		return snap
	}

	snap.Reachable = true
	snap.Latency = time.Duration(latency) * time.Millisecond
	snap.OnlinePlayers = st.Players.Online
	snap.MaxPlayers = st.Players.Max
	snap.Version = st.Version.Name
	snap.MOTD = st.motd()
	for _, pl := range st.Players.Sample {
		if pl.Name != "" {
			snap.PlayerSample = append(snap.PlayerSample, pl.Name)
		}
	}
	return snap
}
