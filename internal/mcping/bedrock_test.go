package mcping

import (
	"context"
	"errors"
	"testing"

	"github.com/wintermist/mcpresence/internal/domain"
)

var bedrockTarget = domain.Target{Address: "play.example.com", Port: 19132, Edition: domain.EditionBedrock}

func TestBedrockProbe(t *testing.T) {
	pong := "MCPE;Best Server Ever;712;1.21.50;12;60;12345678901234;Survival;Survival;1;19132;19133;"

	p := &BedrockPinger{ping: func(_ context.Context, address string) ([]byte, error) {
		if address != "play.example.com:19132" {
			t.Errorf("unexpected address %q", address)
		}
		return []byte(pong), nil
	}}

	snap := p.Probe(context.Background(), bedrockTarget)
	if !snap.Reachable {
		t.Fatal("expected reachable snapshot")
	}
	if snap.MOTD != "Best Server Ever" {
		t.Errorf("motd = %q", snap.MOTD)
	}
	if snap.Version != "1.21.50" {
		t.Errorf("version = %q", snap.Version)
	}
	if snap.OnlinePlayers != 12 || snap.MaxPlayers != 60 {
		t.Errorf("players = %d/%d, want 12/60", snap.OnlinePlayers, snap.MaxPlayers)
	}
}

func TestBedrockProbeError(t *testing.T) {
	p := &BedrockPinger{ping: func(context.Context, string) ([]byte, error) {
		return nil, errors.New("i/o timeout")
	}}

	snap := p.Probe(context.Background(), bedrockTarget)
	if snap.Reachable {
		t.Error("expected unreachable snapshot on ping error")
	}
}

func TestBedrockProbeMalformedPong(t *testing.T) {
	pongs := []string{
		"",
		"MCPE;only;four;fields",
		"MCPE;motd;712;1.21.50;not-a-number;60",
		"MCPE;motd;712;1.21.50;12;NaN",
	}
	for _, pong := range pongs {
		p := &BedrockPinger{ping: func(context.Context, string) ([]byte, error) {
			return []byte(pong), nil
		}}
		if snap := p.Probe(context.Background(), bedrockTarget); snap.Reachable {
			t.Errorf("pong %q: expected unreachable snapshot", pong)
		}
	}
}

func TestNewPicksEdition(t *testing.T) {
	if _, ok := New(domain.EditionJava).(*JavaPinger); !ok {
		t.Error("expected JavaPinger for java edition")
	}
	if _, ok := New(domain.EditionBedrock).(*BedrockPinger); !ok {
		t.Error("expected BedrockPinger for bedrock edition")
	}
}
