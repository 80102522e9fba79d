// mcpresence - Minecraft server status in your Discord sidebar
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/wintermist/mcpresence/internal/bot"
	"github.com/wintermist/mcpresence/internal/config"
	"github.com/wintermist/mcpresence/internal/mcping"
	"github.com/wintermist/mcpresence/internal/monitor"
	"github.com/wintermist/mcpresence/internal/presence"
)

var version = "dev"

const (
	defaultConfigPath = "config.yml"
	probeTimeout      = 10 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "status":
		cmdStatus(os.Args[2:])
	case "version":
		fmt.Println(version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: mcpresence <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init [--force]     Interactive setup: write a config.yml")
	fmt.Println("  serve              Run the bot")
	fmt.Println("  status [--timeout] One-shot server probe, no Discord needed")
	fmt.Println("  version            Show version")
	fmt.Println("  help               Show this help")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  --config <path>    Path to configuration file (default config.yml)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  mcpresence init")
	fmt.Println("  mcpresence serve --config /etc/mcpresence/config.yml")
	fmt.Println("  mcpresence status")
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// cmdServe runs the bot until a signal or the owner's logout command.
func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	fs.Parse(args)

	// Token can come from the environment instead of the file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.BotToken = token
	}

	logger := newLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	rule, err := cfg.MaintenanceRule()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	b, err := bot.New(cfg, logger)
	if err != nil {
		logger.Fatal("bot setup failed", "err", err)
	}

	tgt := cfg.Target()
	mon := monitor.New(monitor.Config{
		Target:   tgt,
		Interval: cfg.PollInterval(),
		Timeout:  probeTimeout,
		Rule:     rule,
	}, mcping.New(tgt.Edition), b.Display(), presence.Short, logger)

	b.AttachMonitor(mon)
	if cfg.NotifyChannel != "" {
		mon.SetNotify(b.Announce)
	}

	logger.Info("logging into Discord...")
	if err := b.Start(); err != nil {
		logger.Fatal("discord connection failed", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go mon.Run(ctx)
	logger.Info("monitoring started", "server", tgt.String(), "edition", tgt.Edition, "interval", cfg.PollInterval())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig)
	case <-b.Done():
		logger.Info("shutdown requested by owner")
	}

	cancel()
	if err := b.Close(); err != nil {
		logger.Warn("closing discord session", "err", err)
	}
}

// cmdStatus probes the configured server once and prints the result.
func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	timeout := fs.Duration("timeout", probeTimeout, "probe timeout")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.ServerAddress == "" {
		fmt.Fprintln(os.Stderr, "Error: server-address is not configured")
		os.Exit(1)
	}
	rule, err := cfg.MaintenanceRule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tgt := cfg.Target()
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	snap := mcping.New(tgt.Edition).Probe(ctx, tgt)
	snap.Maintenance = rule.Matches(snap)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Address:\t%s\n", tgt)
	fmt.Fprintf(w, "Status:\t%s\n", presence.Short(snap))
	if snap.Reachable {
		fmt.Fprintf(w, "Players:\t%d/%d\n", snap.OnlinePlayers, snap.MaxPlayers)
		if len(snap.PlayerSample) > 0 {
			fmt.Fprintf(w, "Sample:\t%s\n", strings.Join(snap.PlayerSample, ", "))
		}
		fmt.Fprintf(w, "Version:\t%s\n", snap.Version)
		fmt.Fprintf(w, "MOTD:\t%s\n", snap.MOTD)
		fmt.Fprintf(w, "Latency:\t%dms\n", snap.Latency.Milliseconds())
	}
	w.Flush()

	if !snap.Reachable {
		os.Exit(1)
	}
}

// cmdInit walks the operator through creating a config file.
func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "where to write the configuration file")
	force := fs.Bool("force", false, "overwrite an existing config file")
	fs.Parse(args)

	if _, err := os.Stat(*configPath); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists. Use --force to overwrite it.\n", *configPath)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	cfg := &config.Config{}

	cfg.ServerAddress = prompt(reader, "Server address", "")
	cfg.ServerType = strings.ToLower(prompt(reader, "Server type (java/bedrock)", "java"))

	portDefault := "25565"
	if cfg.ServerType == "bedrock" {
		portDefault = "19132"
	}
	cfg.ServerPort = promptInt(reader, "Server port", portDefault)
	cfg.RefreshRate = promptInt(reader, "Refresh rate in seconds (30 minimum)", "60")
	cfg.Prefix = prompt(reader, "Command prefix", ";")
	cfg.MaintenancePattern = prompt(reader, "Maintenance MOTD pattern (regexp, empty to disable)", "")
	cfg.NotifyChannel = prompt(reader, "Announcement channel ID (empty to disable)", "")

	fmt.Print("Bot token (input hidden): ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading token: %v\n", err)
		os.Exit(1)
	}
	cfg.BotToken = strings.TrimSpace(string(token))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Save(*configPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config written to %s\n", *configPath)
	fmt.Println("Run `mcpresence serve` to start the bot.")
}

func prompt(r *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptInt(r *bufio.Reader, label, def string) int {
	for {
		raw := prompt(r, label, def)
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n
		}
		fmt.Printf("Not a number: %s\n", raw)
	}
}
