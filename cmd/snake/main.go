// Command snake plays classic Snake in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/brensch/snake/config"
	"github.com/brensch/snake/logging"
	"github.com/brensch/snake/rules"
	"github.com/brensch/snake/tui"
)

func main() {
	def := config.Default()
	configPath := flag.String("config", os.Getenv("SNAKE_CONFIG"), "Optional YAML config file")
	size := flag.Int("size", def.Size, "Side length of the square field, walls included (min 5)")
	frameDelay := flag.Duration("frame-delay", def.FrameDelay, "Delay between rendered frames; the snake moves every 100/size frames")
	seed := flag.Int64("seed", def.Seed, "Apple placement seed (0 = clock)")
	logPath := flag.String("log-path", def.LogPath, "Log file (empty disables logging)")
	logLevel := flag.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
	prettyLogs := flag.Bool("pretty-logs", def.PrettyLogs, "Indent JSON log records")
	altScreen := flag.Bool("alt-screen", def.AltScreen, "Use the terminal's alternate screen")
	mouse := flag.Bool("mouse", def.Mouse, "Enable mouse clicks on the Play button")
	flag.Parse()

	cfg := def
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath, cfg)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg = config.FromEnv(cfg)

	// Flags given on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Size = *size
		case "frame-delay":
			cfg.FrameDelay = *frameDelay
		case "seed":
			cfg.Seed = *seed
		case "log-path":
			cfg.LogPath = *logPath
		case "log-level":
			cfg.LogLevel = *logLevel
		case "pretty-logs":
			cfg.PrettyLogs = *prettyLogs
		case "alt-screen":
			cfg.AltScreen = *altScreen
		case "mouse":
			cfg.Mouse = *mouse
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatalf("snake needs an interactive terminal")
	}

	logFile, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logFile.Close()

	level, _ := cfg.Level()
	logger := logging.New(logFile, logging.Options{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		Pretty:    cfg.PrettyLogs,
	})
	slog.SetDefault(logger)

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	snake, err := rules.NewSnake(cfg.Size, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	logger.Info("session starting",
		"size", cfg.Size,
		"seed", cfg.Seed,
		"frame_delay", cfg.FrameDelay,
		"tick_interval", cfg.TickInterval())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	model := tui.New(snake, tui.Options{
		FrameDelay:    cfg.FrameDelay,
		FramesPerTick: cfg.FramesPerTick(),
		Logger:        logger,
	})
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("program failed", "err", err)
		log.Fatalf("snake: %v", err)
	}

	if m, ok := final.(tui.Model); ok {
		logger.Info("session ended", "games", m.Games(), "best_length", m.BestLength())
	}
}
