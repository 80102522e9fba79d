package domain

// TransitionKind classifies the change between two consecutive snapshots
type TransitionKind string

const (
	KindWentOnline         TransitionKind = "went_online"
	KindWentOffline        TransitionKind = "went_offline"
	KindEnteredMaintenance TransitionKind = "entered_maintenance"
	KindExitedMaintenance  TransitionKind = "exited_maintenance"
	KindPlayerCountChanged TransitionKind = "player_count_changed"
	KindNoChange           TransitionKind = "no_change"
)

// Transition pairs two consecutive snapshots with their classification.
// Prev is nil on the very first poll.
type Transition struct {
	Prev *Snapshot
	Cur  Snapshot
	Kind TransitionKind
}

// Classify determines the transition kind between the previous and
// current snapshot. It is a pure function: the same pair always yields
// the same kind, and only one kind is reported per pair even when
// several fields changed at once. Precedence is reachability flips,
// then maintenance flips (only while the server stays reachable), then
// player-count changes (only outside maintenance).
func Classify(prev *Snapshot, cur Snapshot) TransitionKind {
	if prev == nil {
		if cur.Reachable {
			return KindWentOnline
		}
		return KindWentOffline
	}

	switch {
	case !prev.Reachable && cur.Reachable:
		return KindWentOnline
	case prev.Reachable && !cur.Reachable:
		return KindWentOffline
	}

	if !cur.Reachable {
		// Still offline, nothing to compare.
		return KindNoChange
	}

	switch {
	case !prev.Maintenance && cur.Maintenance:
		return KindEnteredMaintenance
	case prev.Maintenance && !cur.Maintenance:
		return KindExitedMaintenance
	}

	if !cur.Maintenance && prev.OnlinePlayers != cur.OnlinePlayers {
		return KindPlayerCountChanged
	}

	return KindNoChange
}
