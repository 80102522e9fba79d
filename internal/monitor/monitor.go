// Package monitor owns the poll loop: it probes the server on a fixed
// interval, diffs consecutive snapshots into transitions and pushes
// display updates downstream.
package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wintermist/mcpresence/internal/domain"
	"github.com/wintermist/mcpresence/internal/mcping"
)

// Display receives the rendered presence string whenever the status
// changed. Updates are best effort: failures are logged and the next
// tick is the retry.
type Display interface {
	SetPresence(text string) error
}

// Config is the monitor's immutable runtime configuration.
type Config struct {
	Target   domain.Target
	Interval time.Duration
	Timeout  time.Duration
	Rule     domain.MaintenanceRule
}

// Monitor polls a single server and keeps exactly one "last known"
// snapshot. The poll loop is the only writer; command handlers read
// concurrently through Last.
type Monitor struct {
	cfg     Config
	pinger  mcping.Pinger
	display Display
	render  func(domain.Snapshot) string
	notify  func(domain.Transition)
	logger  *log.Logger

	last atomic.Pointer[domain.Snapshot]

	// displayDirty records a failed presence update so the next tick
	// retries it even when nothing changed. Poll goroutine only.
	displayDirty bool
}

// New creates a monitor. render maps a snapshot to the presence string;
// it runs once per transition.
func New(cfg Config, pinger mcping.Pinger, display Display, render func(domain.Snapshot) string, logger *log.Logger) *Monitor {
	if cfg.Timeout <= 0 || cfg.Timeout > cfg.Interval {
		cfg.Timeout = cfg.Interval
	}
	return &Monitor{
		cfg:     cfg,
		pinger:  pinger,
		display: display,
		render:  render,
		logger:  logger,
	}
}

// SetNotify registers an optional transition callback, invoked from the
// poll goroutine for every kind except no_change.
func (m *Monitor) SetNotify(fn func(domain.Transition)) {
	m.notify = fn
}

// Last returns a copy of the most recent snapshot, or false if no poll
// has completed yet.
func (m *Monitor) Last() (domain.Snapshot, bool) {
	if s := m.last.Load(); s != nil {
		return *s, true
	}
	return domain.Snapshot{}, false
}

// Run polls immediately, then on every tick until ctx is cancelled.
// Ticks run sequentially in this goroutine, so they never overlap; an
// overrunning tick delays the next one instead of stacking.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	m.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick performs one probe/diff/publish cycle. It never returns an
// error: probe failures become unreachable snapshots and display
// failures are absorbed after logging.
func (m *Monitor) tick(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	cur := m.pinger.Probe(probeCtx, m.cfg.Target)
	cancel()

	cur.Maintenance = m.cfg.Rule.Matches(cur)

	prev := m.last.Load()
	kind := domain.Classify(prev, cur)

	// Single atomic swap; readers see the old or the new snapshot,
	// never a partial one.
	m.last.Store(&cur)

	if kind == domain.KindNoChange && !m.displayDirty {
		return
	}

	if kind != domain.KindNoChange {
		m.logger.Info("status transition",
			"kind", kind,
			"reachable", cur.Reachable,
			"players", cur.OnlinePlayers,
			"maintenance", cur.Maintenance)
	}

	if err := m.display.SetPresence(m.render(cur)); err != nil {
		m.displayDirty = true
		m.logger.Warn("presence update failed, retrying next tick", "err", err)
	} else {
		m.displayDirty = false
	}

	if m.notify != nil && kind != domain.KindNoChange {
		m.notify(domain.Transition{Prev: prev, Cur: cur, Kind: kind})
	}
}
