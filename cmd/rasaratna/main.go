// Package main provides the game binary: it loads configuration and content,
// then runs the terminal frontend over a single session.
package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/content"
	"github.com/cory-johannsen/rasaratnakara/internal/config"
	"github.com/cory-johannsen/rasaratnakara/internal/frontend/tui"
	"github.com/cory-johannsen/rasaratnakara/internal/game/command"
	"github.com/cory-johannsen/rasaratnakara/internal/game/session"
	"github.com/cory-johannsen/rasaratnakara/internal/observability"
	"github.com/cory-johannsen/rasaratnakara/internal/scripting"
	"github.com/cory-johannsen/rasaratnakara/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	contentDir := flag.String("content", "", "content directory; overrides content.dir")
	noAlt := flag.Bool("inline", false, "render inline instead of on the alternate screen")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	bundle, err := content.Load(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("rooms", bundle.World.RoomCount()),
		zap.Int("recipes", len(bundle.Recipes.Recipes())),
		zap.Int("hints", bundle.Hints.Len()),
	)
	for _, p := range content.CheckEntries(bundle.World) {
		logger.Warn("unusable exit", zap.String("problem", p))
	}

	var scripts *scripting.Manager
	if cfg.Content.ScriptsEnabled {
		var scriptFS fs.FS = bundle.Scripts
		if cfg.Content.ScriptDir != "" {
			scriptFS = os.DirFS(cfg.Content.ScriptDir)
		}
		if scriptFS != nil {
			scripts = scripting.NewManager(cfg.Content.ScriptInstructionLimit, logger)
			defer scripts.Close()
			if _, err := content.LoadScripts(scripts, scriptFS, logger); err != nil {
				logger.Fatal("loading scripts", zap.Error(err))
			}
		}
	}

	if err := tui.ConfigureLocale(cfg.UI.LocaleDir, cfg.UI.Language); err != nil {
		logger.Fatal("configuring locale", zap.Error(err))
	}

	sess, err := session.NewSession(session.Deps{
		World:   bundle.World,
		Items:   bundle.Items,
		Recipes: bundle.Recipes,
		Hints:   bundle.Hints,
		Scripts: scripts,
		Audio:   tui.NewBellSink(os.Stderr, logger),
	}, cfg.Timing, logger)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}
	logger.Info("session ready",
		zap.String("session_id", sess.ID().String()),
		zap.Duration("startup", time.Since(start)),
	)

	model := tui.NewModel(sess, command.DefaultRegistry(), tui.NewRenderer(cfg.UI.WrapWidth), cfg.Timing.Tick, logger)
	var opts []tea.ProgramOption
	if !*noAlt {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, opts...)

	lc := server.NewLifecycle(logger)
	lc.Add("frontend", &server.FuncService{
		StartFn: func() error {
			_, err := program.Run()
			return err
		},
		StopFn: program.Quit,
	})
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("frontend exited", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("session ended",
		zap.String("session_id", sess.ID().String()),
		zap.Stringer("state", sess.State()),
	)
}
