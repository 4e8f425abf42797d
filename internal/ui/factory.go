package ui

import (
	"context"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/config"
	"github.com/proteus-audio/proteus/internal/host"
	"github.com/proteus-audio/proteus/internal/model"
)

type windowDeps struct {
	bridge   *host.Bridge
	settings *config.Settings
	loc      *Localization
	logger   *zap.Logger
}

// FactoryOptions configures a WindowFactory.
type FactoryOptions struct {
	// Context bounds the requests windows send; it normally lives as long as the app.
	Context  context.Context
	Bridge   *host.Bridge
	Settings *config.Settings
	Logger   *zap.Logger
	Width    float32
	Height   float32
	// OnClosed runs on the main goroutine after a window closed.
	OnClosed func(host.SurfaceID)
}

// WindowFactory creates project windows for the orchestrator.
type WindowFactory struct {
	app     fyne.App
	opts    FactoryOptions
	logger  *zap.Logger
	started atomic.Bool
}

// NewWindowFactory creates a factory for app.
func NewWindowFactory(app fyne.App, opts FactoryOptions) *WindowFactory {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWindowWidth, DefaultWindowHeight
	}
	return &WindowFactory{app: app, opts: opts, logger: opts.Logger.Named("ui")}
}

// MarkStarted tells the factory the Fyne event loop is running. Before that,
// windows are built on the calling goroutine, which must be the main one.
func (f *WindowFactory) MarkStarted() {
	f.started.Store(true)
}

// NewSurface implements host.SurfaceFactory.
func (f *WindowFactory) NewSurface(ctx context.Context, id host.SurfaceID, project *model.Project) (host.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pw *ProjectWindow
	build := func() {
		loc := NewLocalization()
		if f.opts.Settings != nil {
			loc.SetLanguage(f.opts.Settings.GetLanguage())
		}

		w := f.app.NewWindow(loc.GetText(KeyAppTitle))
		w.Resize(fyne.NewSize(f.opts.Width, f.opts.Height))
		pw = newProjectWindow(f.opts.Context, id, w, windowDeps{
			bridge:   f.opts.Bridge,
			settings: f.opts.Settings,
			loc:      loc,
			logger:   f.logger,
		}, project)
		w.SetOnClosed(func() {
			if f.opts.OnClosed != nil {
				f.opts.OnClosed(id)
			}
		})
		w.Show()
	}

	if f.started.Load() {
		fyne.DoAndWait(build)
	} else {
		build()
	}
	return pw, nil
}
