package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"daydream/cmd/daydream/app"
	"daydream/cmd/daydream/ui"
	"daydream/internal/audio"
	"daydream/internal/clock"
	"daydream/internal/config"
	"daydream/internal/intranet"
	"daydream/internal/logging"
)

// runPlay starts the interactive intranet. The TUI and the config watcher
// run side by side; whichever stops first stops the other.
func runPlay(cmd *cobra.Command, args []string) error {
	env, err := boot()
	if err != nil {
		return err
	}
	defer env.close()
	cfg := env.cfg

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	player := audio.New(cfg.Audio.Enabled, cfg.Audio.Volume)
	if err := player.Init(); err != nil {
		logging.Boot("audio disabled: %v", err)
	}
	defer player.Close()

	bridge := app.NewBridge()
	defer bridge.Close()

	session := intranet.New(clock.NewReal(bridge.Dispatch), env.narrative, env.shadows,
		intranet.WithSettings(intranet.Settings{
			SecurityDelay:  cfg.GetSecurityDelay(),
			SpamTick:       cfg.GetSpamTick(),
			JumpscareDelay: cfg.GetJumpscareDelay(),
		}),
		intranet.WithPhaseHook(player.OnPhase),
	)
	defer session.Close()

	model := app.New(session, bridge, app.Options{
		Styles:   ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
		MaxWidth: cfg.UI.MaxWidth,
	})
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})

	watcher, err := config.NewWatcher(env.configPath, func(c *config.Config) {
		if err := c.Validate(); err != nil {
			logging.Get(logging.CategoryConfig).Warn("ignoring reloaded config: %v", err)
			return
		}
		logging.Apply(c.Logging.Settings())
	})
	if err != nil {
		logging.Get(logging.CategoryConfig).Warn("config watcher unavailable: %v", err)
	} else {
		g.Go(func() error { return watcher.Run(gctx) })
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
