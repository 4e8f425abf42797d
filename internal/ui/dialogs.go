package ui

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/config"
	"github.com/proteus-audio/proteus/internal/host"
)

// ErrNoWindow is returned when a dialog is requested while no window is open.
var ErrNoWindow = errors.New("no window to attach the dialog to")

// FyneDialogs implements host.Dialogs with Fyne file dialogs. Methods block
// the calling goroutine until the user answers; they must not be called from
// the Fyne main goroutine.
type FyneDialogs struct {
	app      fyne.App
	settings *config.Settings
	logger   *zap.Logger
}

// NewFyneDialogs creates the dialogs used by the orchestrator.
func NewFyneDialogs(app fyne.App, settings *config.Settings, logger *zap.Logger) *FyneDialogs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FyneDialogs{app: app, settings: settings, logger: logger.Named("dialogs")}
}

type answer struct {
	path string
	ok   bool
	err  error
}

type modal interface {
	Show()
	Hide()
}

// ChooseFile shows an open dialog for any file.
func (d *FyneDialogs) ChooseFile(ctx context.Context, owner host.Surface) (string, bool, error) {
	return d.run(ctx, owner, func(parent fyne.Window, done func(answer)) modal {
		fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			done(readerAnswer(r, err))
		}, parent)
		d.startIn(fd)
		return fd
	})
}

// ChooseDirectory shows a folder dialog.
func (d *FyneDialogs) ChooseDirectory(ctx context.Context, owner host.Surface) (string, bool, error) {
	return d.run(ctx, owner, func(parent fyne.Window, done func(answer)) modal {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			switch {
			case err != nil:
				done(answer{err: err})
			case uri == nil:
				done(answer{})
			default:
				done(answer{path: uri.Path(), ok: true})
			}
		}, parent)
		d.startIn(fd)
		return fd
	})
}

// SaveProjectAs shows a save dialog seeded with defaultName. The returned
// path names the project directory to create, so the placeholder file the
// save dialog leaves behind is removed before returning.
func (d *FyneDialogs) SaveProjectAs(ctx context.Context, owner host.Surface, defaultName string) (string, bool, error) {
	return d.run(ctx, owner, func(parent fyne.Window, done func(answer)) modal {
		fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			if err != nil {
				done(answer{err: err})
				return
			}
			if w == nil {
				done(answer{})
				return
			}
			path := w.URI().Path()
			if err := w.Close(); err != nil {
				d.logger.Warn("closing save target", zap.String("path", path), zap.Error(err))
			}
			if err := discardPlaceholder(path); err != nil {
				done(answer{err: err})
				return
			}
			d.remember(path)
			done(answer{path: path, ok: true})
		}, parent)
		fd.SetFileName(defaultName)
		d.startIn(fd)
		return fd
	})
}

// OpenProject shows an open dialog filtered to project descriptors.
func (d *FyneDialogs) OpenProject(ctx context.Context, owner host.Surface, extension string) (string, bool, error) {
	return d.run(ctx, owner, func(parent fyne.Window, done func(answer)) modal {
		fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			a := readerAnswer(r, err)
			if a.ok {
				// the descriptor sits inside the project directory
				d.remember(filepath.Dir(a.path))
			}
			done(a)
		}, parent)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{extension}))
		d.startIn(fd)
		return fd
	})
}

// run shows the dialog built by build on the main goroutine and waits for
// its answer or for ctx to end.
func (d *FyneDialogs) run(ctx context.Context, owner host.Surface, build func(parent fyne.Window, done func(answer)) modal) (string, bool, error) {
	res := make(chan answer, 1)
	var once sync.Once
	done := func(a answer) {
		once.Do(func() { res <- a })
	}

	var shown modal // main goroutine only
	fyne.Do(func() {
		parent := d.parent(owner)
		if parent == nil {
			done(answer{err: ErrNoWindow})
			return
		}
		shown = build(parent, done)
		shown.Show()
	})

	select {
	case a := <-res:
		return a.path, a.ok, a.err
	case <-ctx.Done():
		fyne.Do(func() {
			if shown != nil {
				shown.Hide()
			}
		})
		return "", false, ctx.Err()
	}
}

func (d *FyneDialogs) parent(owner host.Surface) fyne.Window {
	if w, ok := owner.(interface{ Window() fyne.Window }); ok {
		return w.Window()
	}
	windows := d.app.Driver().AllWindows()
	if len(windows) == 0 {
		return nil
	}
	return windows[len(windows)-1]
}

func (d *FyneDialogs) startIn(fd *dialog.FileDialog) {
	if d.settings == nil {
		return
	}
	dir := d.settings.GetLastProjectDirectory()
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		d.logger.Debug("dialog start location unavailable", zap.String("dir", dir), zap.Error(err))
		return
	}
	fd.SetLocation(lister)
}

func (d *FyneDialogs) remember(path string) {
	if d.settings != nil {
		d.settings.SetLastProjectDirectory(filepath.Dir(path))
	}
}

func readerAnswer(r fyne.URIReadCloser, err error) answer {
	if err != nil {
		return answer{err: err}
	}
	if r == nil {
		return answer{}
	}
	path := r.URI().Path()
	_ = r.Close()
	return answer{path: path, ok: true}
}

// discardPlaceholder removes the empty regular file a save dialog creates
// at path. Anything else at path is left alone.
func discardPlaceholder(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.Mode().IsRegular() && info.Size() == 0 {
		return os.Remove(path)
	}
	return nil
}
