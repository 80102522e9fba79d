// Package presence renders status snapshots for Discord: the short
// sidebar presence string and the detailed embed for the server
// command. All renderers are pure.
package presence

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/wintermist/mcpresence/internal/domain"
)

// StartingUp is shown until the first poll completes.
const StartingUp = "Starting up..."

const (
	colorOnline      = 0x43b581
	colorOffline     = 0xf04747
	colorMaintenance = 0xfaa61a
	colorUnknown     = 0x747f8d

	maxSampleNames = 10
)

// Short renders the presence string: "● 5/20 players", "● Offline" or
// "🔧 Maintenance".
func Short(s domain.Snapshot) string {
	switch {
	case s.Maintenance:
		return "🔧 Maintenance"
	case s.Reachable:
		return fmt.Sprintf("● %d/%d players", s.OnlinePlayers, s.MaxPlayers)
	}
	return "● Offline"
}

// Detail renders the full status embed. snap may be nil when no poll
// has completed yet.
func Detail(tgt domain.Target, snap *domain.Snapshot) *discordgo.MessageEmbed {
	em := &discordgo.MessageEmbed{
		Title: "Server Status",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Address", Value: fmt.Sprintf("`%s`", tgt), Inline: true},
			{Name: "Edition", Value: editionLabel(tgt.Edition), Inline: true},
		},
	}

	if snap == nil {
		em.Color = colorUnknown
		em.Description = "Unknown — no successful poll yet."
		return em
	}

	em.Fields = append(em.Fields, &discordgo.MessageEmbedField{
		Name: "Status", Value: stateLabel(*snap), Inline: true,
	})

	if snap.Reachable {
		em.Fields = append(em.Fields,
			&discordgo.MessageEmbedField{
				Name:   "Players",
				Value:  playersLine(*snap),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Version",
				Value:  orPlaceholder(snap.Version),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Latency",
				Value:  fmt.Sprintf("%dms", snap.Latency.Milliseconds()),
				Inline: true,
			},
		)
		if motd := strings.TrimSpace(snap.MOTD); motd != "" {
			em.Fields = append(em.Fields, &discordgo.MessageEmbedField{
				Name: "MOTD", Value: motd,
			})
		}
	}

	em.Color = stateColor(*snap)
	em.Footer = &discordgo.MessageEmbedFooter{Text: "Last checked"}
	em.Timestamp = snap.Time.Format(time.RFC3339)
	return em
}

func stateLabel(s domain.Snapshot) string {
	switch {
	case s.Maintenance:
		return "🔧 Maintenance"
	case s.Reachable:
		return "🟢 Online"
	}
	return "🔴 Offline"
}

func stateColor(s domain.Snapshot) int {
	switch {
	case s.Maintenance:
		return colorMaintenance
	case s.Reachable:
		return colorOnline
	}
	return colorOffline
}

func playersLine(s domain.Snapshot) string {
	line := fmt.Sprintf("%d/%d", s.OnlinePlayers, s.MaxPlayers)
	if len(s.PlayerSample) == 0 {
		return line
	}
	names := s.PlayerSample
	if len(names) > maxSampleNames {
		names = names[:maxSampleNames]
	}
	return fmt.Sprintf("%s\n%s", line, strings.Join(names, ", "))
}

func editionLabel(e domain.Edition) string {
	if e == domain.EditionBedrock {
		return "Bedrock"
	}
	return "Java"
}

func orPlaceholder(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
