package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/config"
	"github.com/proteus-audio/proteus/internal/host"
)

// InstallTrayMenu puts application-level actions in the system tray when the
// driver has one. Its requests carry no window id, so they still work once
// every window is closed.
func InstallTrayMenu(ctx context.Context, a fyne.App, bridge *host.Bridge, settings *config.Settings, logger *zap.Logger) bool {
	desk, ok := a.(desktop.App)
	if !ok {
		return false
	}
	loc := NewLocalization()
	if settings != nil {
		loc.SetLanguage(settings.GetLanguage())
	}
	desk.SetSystemTrayIcon(LoadLogoResource())
	desk.SetSystemTrayMenu(newAppMenu(ctx, bridge, loc, logger))
	return true
}

func newAppMenu(ctx context.Context, bridge *host.Bridge, loc *Localization, logger *zap.Logger) *fyne.Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("tray")

	send := func(req host.Request) func() {
		return func() {
			go func() {
				if _, err := bridge.Call(ctx, "", req); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("request failed", zap.String("kind", req.Kind().String()), zap.Error(err))
				}
			}()
		}
	}

	return fyne.NewMenu(loc.GetText(KeyAppTitle),
		fyne.NewMenuItem(loc.GetText(KeyNewWindow), send(host.NewWindowRequest{})),
		fyne.NewMenuItem(loc.GetText(KeyOpenProject), send(host.LoadRequest{})),
	)
}
