package domain

import (
	"fmt"
	"time"
)

// Edition selects the Minecraft server query protocol
type Edition string

const (
	EditionJava    Edition = "java"
	EditionBedrock Edition = "bedrock"
)

// DefaultPort returns the stock server port for the edition
func (e Edition) DefaultPort() int {
	if e == EditionBedrock {
		return 19132
	}
	return 25565
}

// Target identifies the Minecraft server being monitored.
// Built once from config at startup and never mutated.
type Target struct {
	Address string  `json:"address"`
	Port    int     `json:"port"`
	Edition Edition `json:"edition"`
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Address, t.Port)
}

// Snapshot is one point-in-time result of querying the server.
// OnlinePlayers, MaxPlayers, Version, MOTD and Latency are only
// meaningful when Reachable is true.
type Snapshot struct {
	Time          time.Time     `json:"time"`
	Reachable     bool          `json:"reachable"`
	OnlinePlayers int           `json:"online_players"`
	MaxPlayers    int           `json:"max_players"`
	Version       string        `json:"version,omitempty"`
	MOTD          string        `json:"motd,omitempty"`
	Latency       time.Duration `json:"latency,omitempty"`
	PlayerSample  []string      `json:"player_sample,omitempty"`
	Maintenance   bool          `json:"maintenance"`
}
