package domain

import "testing"

func snap(reachable bool, online, max int, maintenance bool) Snapshot {
	return Snapshot{
		Reachable:     reachable,
		OnlinePlayers: online,
		MaxPlayers:    max,
		Maintenance:   maintenance,
	}
}

func TestClassify(t *testing.T) {
	online5 := snap(true, 5, 20, false)

	tests := []struct {
		name string
		prev *Snapshot
		cur  Snapshot
		want TransitionKind
	}{
		{"first poll reachable", nil, snap(true, 0, 20, false), KindWentOnline},
		{"first poll unreachable", nil, snap(false, 0, 0, false), KindWentOffline},
		{"went offline", &online5, snap(false, 0, 0, false), KindWentOffline},
		{"went online", &Snapshot{}, snap(true, 3, 20, false), KindWentOnline},
		{"still offline", &Snapshot{}, snap(false, 0, 0, false), KindNoChange},
		{"player count changed", &online5, snap(true, 7, 20, false), KindPlayerCountChanged},
		{"steady state", &online5, snap(true, 5, 20, false), KindNoChange},
		{"entered maintenance", &online5, snap(true, 5, 20, true), KindEnteredMaintenance},
		{"exited maintenance", &Snapshot{Reachable: true, Maintenance: true}, snap(true, 0, 20, false), KindExitedMaintenance},
		{"count change during maintenance ignored", &Snapshot{Reachable: true, OnlinePlayers: 2, Maintenance: true}, snap(true, 6, 20, true), KindNoChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.prev, tt.cur); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Reachability flips must win over simultaneous maintenance and
// player-count changes.
func TestClassifyPrecedence(t *testing.T) {
	prev := snap(false, 0, 0, false)
	cur := snap(true, 9, 20, true)
	if got := Classify(&prev, cur); got != KindWentOnline {
		t.Errorf("Classify() = %v, want %v", got, KindWentOnline)
	}

	prev2 := snap(true, 9, 20, true)
	cur2 := snap(false, 0, 0, false)
	if got := Classify(&prev2, cur2); got != KindWentOffline {
		t.Errorf("Classify() = %v, want %v", got, KindWentOffline)
	}

	// Maintenance flip wins over a simultaneous count change.
	prev3 := snap(true, 2, 20, false)
	cur3 := snap(true, 8, 20, true)
	if got := Classify(&prev3, cur3); got != KindEnteredMaintenance {
		t.Errorf("Classify() = %v, want %v", got, KindEnteredMaintenance)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	cases := []Snapshot{
		snap(true, 5, 20, false),
		snap(false, 0, 0, false),
		snap(true, 0, 20, true),
	}
	for _, s := range cases {
		first := s
		if got := Classify(&first, s); got != KindNoChange {
			t.Errorf("Classify(s, s) = %v, want %v", got, KindNoChange)
		}
	}
}

func TestMaintenanceRule(t *testing.T) {
	rule, err := NewMaintenanceRule(`(?i)maint`, MaintenanceFieldMOTD)
	if err != nil {
		t.Fatalf("NewMaintenanceRule: %v", err)
	}

	s := snap(true, 0, 20, false)
	s.MOTD = "Down for MAINTENANCE, back soon"
	if !rule.Matches(s) {
		t.Error("expected MOTD match")
	}

	s.MOTD = "Welcome!"
	if rule.Matches(s) {
		t.Error("unexpected match on plain MOTD")
	}

	// Unreachable servers are offline, not in maintenance.
	s.MOTD = "maintenance"
	s.Reachable = false
	if rule.Matches(s) {
		t.Error("unreachable snapshot must not match")
	}

	// Zero rule never matches.
	var none MaintenanceRule
	if none.Matches(snap(true, 1, 2, false)) {
		t.Error("zero rule matched")
	}
}

func TestMaintenanceRuleFields(t *testing.T) {
	s := snap(true, 0, 20, false)
	s.Version = "Maintenance"
	s.MOTD = "hello"

	rule, err := NewMaintenanceRule(`Maintenance`, MaintenanceFieldVersion)
	if err != nil {
		t.Fatalf("NewMaintenanceRule: %v", err)
	}
	if !rule.Matches(s) {
		t.Error("expected version match")
	}

	any, err := NewMaintenanceRule(`Maintenance`, MaintenanceFieldAny)
	if err != nil {
		t.Fatalf("NewMaintenanceRule: %v", err)
	}
	if !any.Matches(s) {
		t.Error("expected any-field match")
	}

	if _, err := NewMaintenanceRule(`x`, "favicon"); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := NewMaintenanceRule(`[`, MaintenanceFieldMOTD); err == nil {
		t.Error("expected error for bad pattern")
	}
}
