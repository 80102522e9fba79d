package presence

import (
	"strings"
	"testing"
	"time"

	"github.com/wintermist/mcpresence/internal/domain"
)

var target = domain.Target{Address: "mc.example.com", Port: 25565, Edition: domain.EditionJava}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		snap domain.Snapshot
		want string
	}{
		{"online", domain.Snapshot{Reachable: true, OnlinePlayers: 5, MaxPlayers: 20}, "● 5/20 players"},
		{"empty server", domain.Snapshot{Reachable: true, OnlinePlayers: 0, MaxPlayers: 20}, "● 0/20 players"},
		{"offline", domain.Snapshot{}, "● Offline"},
		{"maintenance", domain.Snapshot{Reachable: true, Maintenance: true}, "🔧 Maintenance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Short(tt.snap); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetailNoSnapshot(t *testing.T) {
	em := Detail(target, nil)
	if !strings.Contains(em.Description, "no successful poll") {
		t.Errorf("description = %q, want unknown-state placeholder", em.Description)
	}
	if em.Color != colorUnknown {
		t.Errorf("color = %#x, want %#x", em.Color, colorUnknown)
	}
}

func TestDetailOnline(t *testing.T) {
	snap := &domain.Snapshot{
		Time:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Reachable:     true,
		OnlinePlayers: 2,
		MaxPlayers:    20,
		Version:       "1.21.4",
		MOTD:          "Welcome home",
		Latency:       35 * time.Millisecond,
		PlayerSample:  []string{"steve", "alex"},
	}

	em := Detail(target, snap)
	if em.Color != colorOnline {
		t.Errorf("color = %#x, want %#x", em.Color, colorOnline)
	}

	fields := map[string]string{}
	for _, f := range em.Fields {
		fields[f.Name] = f.Value
	}
	if fields["Address"] != "`mc.example.com:25565`" {
		t.Errorf("address field = %q", fields["Address"])
	}
	if fields["Status"] != "🟢 Online" {
		t.Errorf("status field = %q", fields["Status"])
	}
	if !strings.HasPrefix(fields["Players"], "2/20") || !strings.Contains(fields["Players"], "steve, alex") {
		t.Errorf("players field = %q", fields["Players"])
	}
	if fields["Version"] != "1.21.4" {
		t.Errorf("version field = %q", fields["Version"])
	}
	if fields["MOTD"] != "Welcome home" {
		t.Errorf("motd field = %q", fields["MOTD"])
	}
	if fields["Latency"] != "35ms" {
		t.Errorf("latency field = %q", fields["Latency"])
	}
	if em.Timestamp != "2026-08-01T12:00:00Z" {
		t.Errorf("timestamp = %q", em.Timestamp)
	}
}

func TestDetailOffline(t *testing.T) {
	snap := &domain.Snapshot{Time: time.Now().UTC()}
	em := Detail(target, snap)

	if em.Color != colorOffline {
		t.Errorf("color = %#x, want %#x", em.Color, colorOffline)
	}
	for _, f := range em.Fields {
		if f.Name == "Players" || f.Name == "Version" || f.Name == "MOTD" {
			t.Errorf("unexpected field %q on offline embed", f.Name)
		}
	}
}

func TestDetailMaintenance(t *testing.T) {
	snap := &domain.Snapshot{
		Time:        time.Now().UTC(),
		Reachable:   true,
		MOTD:        "Maintenance!",
		Maintenance: true,
	}
	em := Detail(target, snap)
	if em.Color != colorMaintenance {
		t.Errorf("color = %#x, want %#x", em.Color, colorMaintenance)
	}
}
