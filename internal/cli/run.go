package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/config"
	"github.com/proteus-audio/proteus/internal/host"
	"github.com/proteus-audio/proteus/internal/ipc"
	"github.com/proteus-audio/proteus/internal/platform"
	"github.com/proteus-audio/proteus/internal/ui"
)

// AppID identifies the application to Fyne (preferences storage, notifications).
const AppID = "io.github.proteus-audio.proteus"

// requestBuffer is how many surface requests may queue before a sender blocks.
const requestBuffer = 16

func runEditor(cc *commandContext, project string, out io.Writer) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cc.ensureLogger()
	if err != nil {
		return err
	}

	if project != "" {
		if project, err = absProjectPath(project); err != nil {
			return err
		}
	}

	inst, primary, err := ipc.AcquireInstance(cfg.LockPath())
	if err != nil {
		return err
	}
	if !primary {
		logger.Debug("editor already running, forwarding", zap.String("socket", cfg.SocketPath()))
		return forwardToPrimary(cfg.SocketPath(), project, out)
	}
	defer func() {
		if err := inst.Release(); err != nil {
			logger.Warn("release instance lock", zap.Error(err))
		}
	}()

	logger.Info("starting editor",
		zap.String("version", cc.version),
		zap.String("config", cc.configPath),
		zap.String("runtime_dir", cfg.RuntimeDir))
	return runPrimary(cfg, logger, project)
}

func runPrimary(cfg *config.Config, logger *zap.Logger, project string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.NewWithID(AppID)
	a.SetIcon(ui.LoadLogoResource())
	a.Settings().SetTheme(ui.NewEditorTheme())
	settings := config.NewSettings(a, cfg.DefaultProjectName)

	bridge := host.NewBridge(requestBuffer)
	var orch *host.Orchestrator
	factory := ui.NewWindowFactory(a, ui.FactoryOptions{
		Context:  ctx,
		Bridge:   bridge,
		Settings: settings,
		Logger:   logger,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		OnClosed: func(id host.SurfaceID) {
			// macOS keeps the app alive without windows
			if orch.SurfaceClosed(id) && runtime.GOOS != platform.OSDarwin {
				a.Quit()
			}
		},
	})
	orch = host.NewOrchestrator(ui.NewFyneDialogs(a, settings, logger), factory, host.Options{
		DefaultProjectName: cfg.DefaultProjectName,
		NameSource:         settings.GetDefaultProjectName,
		Logger:             logger,
	})
	go orch.Serve(ctx, bridge.Requests())
	ui.InstallTrayMenu(ctx, a, bridge, settings, logger)

	// The first window is built here, on the main goroutine, before the event loop starts.
	opened := false
	if project != "" {
		var err error
		if opened, err = orch.OpenProjectFile(ctx, project); err != nil {
			logger.Error("open project", zap.String("path", project), zap.Error(err))
		}
	}
	if !opened {
		if _, err := orch.Activate(ctx); err != nil {
			return fmt.Errorf("create window: %w", err)
		}
	}

	var server *ipc.Server
	a.Lifecycle().SetOnStarted(func() {
		factory.MarkStarted()
		s, err := ipc.NewServer(ctx, cfg.SocketPath(), orch, logger)
		if err != nil {
			logger.Warn("IPC server unavailable; other launches cannot reach this editor", zap.Error(err))
			return
		}
		server = s
		s.Serve()
	})
	a.Lifecycle().SetOnEnteredForeground(func() {
		go func() {
			if _, err := orch.Activate(ctx); err != nil {
				logger.Warn("activate", zap.Error(err))
			}
		}()
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	running := make(chan struct{})
	go func() {
		select {
		case <-sigCtx.Done():
			logger.Info("signal received, quitting")
			fyne.Do(a.Quit)
		case <-running:
		}
	}()

	a.Run()
	close(running)

	if server != nil {
		server.Close()
	}
	logger.Info("editor stopped")
	return nil
}

// absProjectPath resolves a command line project argument against the
// current directory, which the running editor does not share.
func absProjectPath(p string) (string, error) {
	expanded, err := platform.ExpandHome(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}

func forwardToPrimary(socket, project string, out io.Writer) error {
	client, err := ipc.Dial(socket)
	if err != nil {
		return fmt.Errorf("an editor holds the instance lock but is not reachable at %s: %w", socket, err)
	}
	defer client.Close()

	if project == "" {
		resp, err := client.NewWindow()
		if err != nil {
			return fmt.Errorf("request new window: %w", err)
		}
		fmt.Fprintf(out, "Opened window %s in the running editor\n", resp.Surface)
		return nil
	}

	resp, err := client.OpenProject(project)
	if err != nil {
		return fmt.Errorf("open %s: %w", project, err)
	}
	if !resp.Opened {
		fmt.Fprintf(out, "No project found at %s\n", project)
		return nil
	}
	fmt.Fprintf(out, "Opened %s in the running editor\n", project)
	return nil
}
