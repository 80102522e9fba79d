package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/wintermist/mcpresence/internal/domain"
	"github.com/wintermist/mcpresence/internal/presence"
)

type command struct {
	name      string
	aliases   []string
	help      string
	ownerOnly bool
	run       func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) error
}

func (b *Bot) commandTable() []*command {
	return []*command{
		{
			name:    "server",
			aliases: []string{"status", "ip"},
			help:    "Show the server's current status.",
			run:     b.cmdServer,
		},
		{
			name: "help",
			help: "Show this message.",
			run:  b.cmdHelp,
		},
		{
			name:      "logout",
			aliases:   []string{"shutdown"},
			help:      "Shut the bot down (owner only).",
			ownerOnly: true,
			run:       b.cmdLogout,
		},
	}
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}

	rest, ok := stripPrefix(m.Content, b.cfg.Prefix, selfID)
	if !ok {
		return
	}

	fields := strings.Fields(rest)
	name := strings.ToLower(fields[0])
	cmd := b.lookup(name)
	if cmd == nil {
		return
	}

	b.logger.Info("command", "user", m.Author.Username, "channel", m.ChannelID, "content", m.Content)

	if cmd.ownerOnly && !b.isOwner(m.Author.ID) {
		b.reply(s, m, "❌ Only the bot owner can use this command.")
		return
	}

	if err := cmd.run(s, m, fields[1:]); err != nil {
		b.logger.Error("command failed", "command", cmd.name, "err", err)
		b.reply(s, m, fmt.Sprintf("❌ Something went wrong: %v", err))
	}
}

func (b *Bot) lookup(name string) *command {
	for _, cmd := range b.commands {
		if cmd.name == name {
			return cmd
		}
		for _, alias := range cmd.aliases {
			if alias == name {
				return cmd
			}
		}
	}
	return nil
}

// stripPrefix removes the command prefix, or the bot mention used as a
// prefix, and reports whether the message was addressed to the bot.
func stripPrefix(content, prefix, selfID string) (string, bool) {
	content = strings.TrimSpace(content)

	if prefix != "" && strings.HasPrefix(content, prefix) {
		rest := strings.TrimSpace(content[len(prefix):])
		return rest, rest != ""
	}

	if selfID != "" {
		for _, mention := range []string{"<@" + selfID + ">", "<@!" + selfID + ">"} {
			if strings.HasPrefix(content, mention) {
				rest := strings.TrimSpace(content[len(mention):])
				return rest, rest != ""
			}
		}
	}

	return "", false
}

func (b *Bot) cmdServer(s *discordgo.Session, m *discordgo.MessageCreate, _ []string) error {
	var snap *domain.Snapshot
	if b.mon != nil {
		if last, ok := b.mon.Last(); ok {
			snap = &last
		}
	}

	_, err := s.ChannelMessageSendEmbed(m.ChannelID, presence.Detail(b.target, snap))
	return err
}

func (b *Bot) cmdHelp(s *discordgo.Session, m *discordgo.MessageCreate, args []string) error {
	_, err := s.ChannelMessageSendEmbed(m.ChannelID, b.helpEmbed(args))
	return err
}

// helpEmbed renders the command list, or the detail page for a single
// command when one is named.
func (b *Bot) helpEmbed(args []string) *discordgo.MessageEmbed {
	if len(args) > 0 {
		name := strings.ToLower(args[0])
		cmd := b.lookup(name)
		if cmd == nil {
			return &discordgo.MessageEmbed{
				Description: fmt.Sprintf("No command called `%s` found.", name),
				Color:       0x5865f2,
			}
		}

		desc := cmd.help
		if len(cmd.aliases) > 0 {
			desc += fmt.Sprintf("\n\n**Aliases:** `%s`", strings.Join(cmd.aliases, "`, `"))
		}
		return &discordgo.MessageEmbed{
			Title:       b.cfg.Prefix + cmd.name,
			Description: desc,
			Color:       0x5865f2,
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Use `%shelp [command]` for more info on a command.\n\n**Commands**\n", b.cfg.Prefix)
	for _, cmd := range b.commands {
		fmt.Fprintf(&sb, "`%s%s` – %s\n", b.cfg.Prefix, cmd.name, cmd.help)
	}

	return &discordgo.MessageEmbed{
		Title:       "Server Status Bot",
		Description: sb.String(),
		Color:       0x5865f2,
	}
}

func (b *Bot) cmdLogout(s *discordgo.Session, m *discordgo.MessageCreate, _ []string) error {
	b.reply(s, m, "Logging out...")
	b.shutdownOnce.Do(func() { close(b.done) })
	return nil
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, text); err != nil {
		b.logger.Warn("reply failed", "err", err)
	}
}
