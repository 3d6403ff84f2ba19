package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/game"
	"github.com/pthm-cable/rodfield/systems"
	"github.com/pthm-cable/rodfield/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	showPanel := flag.Bool("panel", false, "Show the parameter panel at startup (toggle with Tab)")
	headless := flag.Bool("headless", false, "Run without graphics using a fixed clock and scripted pointer")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	seed := flag.Int64("seed", 0, "Grid jitter seed (0 = use config)")
	mode := flag.String("mode", "", "Visual mode: rods or lines (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	switch *mode {
	case "":
	case config.ModeRods, config.ModeLines:
		cfg.Mode = *mode
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}

	store := config.NewStore(cfg)
	opts := game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		g, err := game.NewGame(store, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer closeGame(g)

		stop := make(chan struct{})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			close(stop)
		}()

		fps := cfg.Screen.TargetFPS
		if fps <= 0 {
			fps = 60
		}
		slog.Info("starting headless run",
			"mode", cfg.Mode,
			"max_frames", *maxFrames,
			"fps", fps,
		)
		g.RunHeadless(systems.NewFixedClock(1/float64(fps)), *maxFrames, stop)
		return
	}

	// Graphical mode
	if cfg.Screen.MSAA {
		rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Rod Field")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(store, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer closeGame(g)

	v := viewer.New(g, systems.NewWallClock(), *showPanel)
	defer v.Close()
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxFrames > 0 && g.Frame() >= *maxFrames {
			break
		}
	}
	slog.Info("window closed", "frames", g.Frame())
}

func closeGame(g *game.Game) {
	if err := g.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
