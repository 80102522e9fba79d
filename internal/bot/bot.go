// Package bot wires the monitor to Discord: presence updates, optional
// transition announcements and the prefix command surface.
package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/wintermist/mcpresence/internal/config"
	"github.com/wintermist/mcpresence/internal/domain"
	"github.com/wintermist/mcpresence/internal/monitor"
	"github.com/wintermist/mcpresence/internal/presence"
)

// Bot owns the Discord session.
type Bot struct {
	cfg     *config.Config
	target  domain.Target
	session *discordgo.Session
	mon     *monitor.Monitor
	logger  *log.Logger

	commands     []*command
	done         chan struct{}
	shutdownOnce sync.Once

	// discordgo runs each event handler in its own goroutine, so the
	// Ready handler's owner write races message handlers without this.
	ownerMu sync.RWMutex
	ownerID string
}

// New creates the bot and its Discord session without connecting.
func New(cfg *config.Config, logger *log.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		cfg:     cfg,
		target:  cfg.Target(),
		session: session,
		logger:  logger,
		done:    make(chan struct{}),
	}
	b.commands = b.commandTable()

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessage)
	return b, nil
}

// AttachMonitor gives the command handlers access to the cached
// snapshot. Must be called before Start.
func (b *Bot) AttachMonitor(m *monitor.Monitor) {
	b.mon = m
}

// Display returns the presence sink the monitor pushes updates to.
func (b *Bot) Display() monitor.Display {
	return presenceDisplay{session: b.session}
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}
	return nil
}

// Close disconnects from Discord.
func (b *Bot) Close() error {
	return b.session.Close()
}

// Done is closed when the owner requests a shutdown via the logout
// command.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in", "user", r.User.Username, "id", r.User.ID)

	if err := s.UpdateGameStatus(0, presence.StartingUp); err != nil {
		b.logger.Warn("initial presence update failed", "err", err)
	}

	// The owner gate for the logout command. Ready re-fires on every
	// reconnect, which also picks up ownership transfers.
	app, err := s.Application("@me")
	if err != nil {
		b.logger.Warn("could not resolve application owner", "err", err)
		return
	}
	if app.Owner != nil {
		b.setOwner(app.Owner.ID)
	}
}

func (b *Bot) setOwner(id string) {
	b.ownerMu.Lock()
	b.ownerID = id
	b.ownerMu.Unlock()
}

// isOwner reports whether id is the resolved application owner. Always
// false until the first Ready resolves ownership.
func (b *Bot) isOwner(id string) bool {
	b.ownerMu.RLock()
	defer b.ownerMu.RUnlock()
	return b.ownerID != "" && id == b.ownerID
}

// Announce posts a transition embed to the configured notify channel.
// Player-count churn is deliberately not announced; it is visible in
// the presence string already.
func (b *Bot) Announce(tr domain.Transition) {
	if b.cfg.NotifyChannel == "" {
		return
	}

	var text string
	switch tr.Kind {
	case domain.KindWentOnline:
		text = "🟢 The server is back online."
	case domain.KindWentOffline:
		text = "🔴 The server went offline."
	case domain.KindEnteredMaintenance:
		text = "🔧 The server entered maintenance."
	case domain.KindExitedMaintenance:
		text = "🟢 The server is out of maintenance."
	default:
		return
	}

	em := presence.Detail(b.target, &tr.Cur)
	em.Description = text
	if _, err := b.session.ChannelMessageSendEmbed(b.cfg.NotifyChannel, em); err != nil {
		b.logger.Warn("transition announcement failed", "err", err)
	}
}

// presenceDisplay adapts the Discord session to monitor.Display.
type presenceDisplay struct {
	session *discordgo.Session
}

func (d presenceDisplay) SetPresence(text string) error {
	return d.session.UpdateGameStatus(0, text)
}
