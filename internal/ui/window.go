package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/config"
	"github.com/proteus-audio/proteus/internal/host"
	"github.com/proteus-audio/proteus/internal/model"
	"github.com/proteus-audio/proteus/internal/platform"
)

// ProjectWindow is one editor window. Project state is owned by the Fyne main
// goroutine; requests to the host run on their own goroutines and hand their
// results back through fyne.Do.
type ProjectWindow struct {
	id       host.SurfaceID
	ctx      context.Context
	window   fyne.Window
	bridge   *host.Bridge
	settings *config.Settings
	loc      *Localization
	logger   *zap.Logger

	project  model.Project
	media    map[model.TrackFileSkeleton]model.TrackFile // imported content, runtime only
	selected int                                         // index into project.Tracks, -1 for none

	title  *widget.Label
	status *widget.Label
	list   *widget.List
	empty  *widget.Label
}

func newProjectWindow(ctx context.Context, id host.SurfaceID, w fyne.Window, deps windowDeps, project *model.Project) *ProjectWindow {
	pw := &ProjectWindow{
		id:       id,
		ctx:      ctx,
		window:   w,
		bridge:   deps.bridge,
		settings: deps.settings,
		loc:      deps.loc,
		logger:   deps.logger.With(zap.String("surface", string(id))),
		media:    make(map[model.TrackFileSkeleton]model.TrackFile),
		selected: -1,
	}
	if project != nil {
		pw.project = project.Clone()
	} else {
		pw.project = *model.NewProject()
	}

	pw.buildUI()
	pw.window.SetMainMenu(pw.buildMenu())
	pw.refresh()
	return pw
}

// ID implements host.Surface.
func (pw *ProjectWindow) ID() host.SurfaceID {
	return pw.id
}

// Window returns the underlying Fyne window; dialogs attach to it.
func (pw *ProjectWindow) Window() fyne.Window {
	return pw.window
}

// Close implements host.Surface.
func (pw *ProjectWindow) Close() {
	fyne.Do(pw.window.Close)
}

func (pw *ProjectWindow) buildUI() {
	pw.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	pw.status = widget.NewLabel("")
	pw.empty = widget.NewLabel(pw.loc.GetText(KeyNoTracks))
	pw.empty.Wrapping = fyne.TextWrapWord

	pw.list = widget.NewList(
		func() int { return len(pw.project.Tracks) },
		func() fyne.CanvasObject {
			return container.NewVBox(
				widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(""),
			)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < 0 || i >= len(pw.project.Tracks) {
				return
			}
			box := o.(*fyne.Container)
			t := pw.project.Tracks[i]
			box.Objects[0].(*widget.Label).SetText(fmt.Sprintf(pw.loc.GetText(KeyTrackFilesFormat), t.ID, len(t.Files)))
			box.Objects[1].(*widget.Label).SetText(pw.describeFiles(t))
		},
	)
	pw.list.OnSelected = func(i widget.ListItemID) { pw.selected = i }
	pw.list.OnUnselected = func(widget.ListItemID) { pw.selected = -1 }

	header := container.NewVBox(pw.title, pw.status, widget.NewSeparator())
	body := container.NewStack(pw.list, container.NewCenter(pw.empty))
	pw.window.SetContent(container.NewBorder(header, nil, nil, nil, body))
}

func (pw *ProjectWindow) buildMenu() *fyne.MainMenu {
	t := pw.loc.GetText
	file := fyne.NewMenu(t(KeyFile),
		fyne.NewMenuItem(t(KeyNewWindow), pw.onNewWindow),
		fyne.NewMenuItem(t(KeyOpenProject), pw.onLoad),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeySave), func() { pw.onSave(false) }),
		fyne.NewMenuItem(t(KeySaveAs), func() { pw.onSave(true) }),
		fyne.NewMenuItem(t(KeySaveIntoFolder), pw.onSaveIntoFolder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeyImportMedia), pw.onImport),
		fyne.NewMenuItem(t(KeyReveal), pw.onReveal),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeyPreferences), pw.onPreferences),
	)
	track := fyne.NewMenu(t(KeyTrack),
		fyne.NewMenuItem(t(KeyAddTrack), pw.onAddTrack),
		fyne.NewMenuItem(t(KeyRemoveTrack), pw.onRemoveTrack),
	)
	return fyne.NewMainMenu(file, track)
}

func (pw *ProjectWindow) describeFiles(t model.Track) string {
	if len(t.Files) == 0 {
		return DashPlaceholder
	}
	text := ""
	for i, f := range t.Files {
		if i > 0 {
			text += MiddleDotSeparator
		}
		text += f.Name
		if m, ok := pw.media[f]; ok && m.Type != "" {
			text += " (" + m.Type + ", " + humanize.Bytes(uint64(len(m.Data))) + ")"
		}
	}
	return text
}

func (pw *ProjectWindow) refresh() {
	name := pw.project.Name
	if name == "" {
		name = pw.loc.GetText(KeyUntitled)
	}
	pw.window.SetTitle(name + MiddleDotSeparator + pw.loc.GetText(KeyAppTitle))
	pw.title.SetText(name)
	if pw.project.IsSaved() {
		pw.status.SetText(platform.ProjectDir(pw.project.Location, pw.project.Name))
	} else {
		pw.status.SetText(pw.loc.GetText(KeyNotSaved))
	}
	if len(pw.project.Tracks) == 0 {
		pw.empty.Show()
	} else {
		pw.empty.Hide()
	}
	pw.list.Refresh()
}

// call sends req to the host off the main goroutine and hands the response
// to apply on the main goroutine. Errors are shown; cancellation is silent.
func (pw *ProjectWindow) call(req host.Request, apply func(host.Response)) {
	go func() {
		resp, err := pw.bridge.Call(pw.ctx, pw.id, req)
		fyne.Do(func() {
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				pw.logger.Warn("request failed", zap.String("kind", req.Kind().String()), zap.Error(err))
				dialog.ShowError(err, pw.window)
				return
			}
			if apply != nil {
				apply(resp)
			}
		})
	}()
}

func (pw *ProjectWindow) onNewWindow() {
	pw.call(host.NewWindowRequest{}, nil)
}

func (pw *ProjectWindow) onLoad() {
	pw.call(host.LoadRequest{}, pw.applyLoad)
}

// applyLoad adopts a loaded project. A chosen descriptor whose project holds
// nothing on disk is reported; a canceled dialog is not.
func (pw *ProjectWindow) applyLoad(resp host.Response) {
	r, ok := resp.(*host.ProjectResponse)
	if !ok {
		return
	}
	if !r.Found {
		if r.Location != "" {
			dialog.ShowInformation(pw.loc.GetText(KeyOpenProject), pw.loc.GetText(KeyNoProjectFound), pw.window)
		}
		return
	}
	pw.adopt(r)
	pw.status.SetText(pw.loc.GetText(KeyProjectLoaded) + MiddleDotSeparator + pw.status.Text)
}

// onSave saves the project. asNew forgets the current location first so the
// save-as dialog is shown.
func (pw *ProjectWindow) onSave(asNew bool) {
	snapshot := pw.project.Clone()
	if asNew {
		snapshot.Location = ""
	}
	pw.save(snapshot)
}

func (pw *ProjectWindow) onSaveIntoFolder() {
	pw.call(host.ChooseDirRequest{}, func(resp host.Response) {
		r, ok := resp.(*host.ChooseDirResponse)
		if !ok || r.Canceled {
			return
		}
		snapshot := pw.project.Clone()
		snapshot.Location = r.Path
		if snapshot.Name == "" && pw.settings != nil {
			snapshot.Name = pw.settings.GetDefaultProjectName()
		}
		pw.save(snapshot)
	})
}

func (pw *ProjectWindow) save(snapshot model.Project) {
	pw.call(host.SaveRequest{Project: snapshot}, func(resp host.Response) {
		r, ok := resp.(*host.ProjectResponse)
		if !ok || !r.Found {
			return
		}
		pw.adopt(r)
		pw.status.SetText(pw.loc.GetText(KeyProjectSaved) + MiddleDotSeparator + pw.status.Text)
	})
}

// adopt replaces the in-memory project with the state the host read back.
func (pw *ProjectWindow) adopt(r *host.ProjectResponse) {
	pw.project = *r.Project()
	if pw.project.Tracks == nil {
		pw.project.Tracks = make([]model.Track, 0)
	}
	pw.selected = -1
	pw.list.UnselectAll()
	if pw.settings != nil {
		pw.settings.SetLastProjectDirectory(r.Location)
	}
	pw.refresh()
}

func (pw *ProjectWindow) onImport() {
	pw.call(host.OpenFileRequest{}, pw.applyImport)
}

// applyImport adds the opened file to the selected track, or to a new one.
func (pw *ProjectWindow) applyImport(resp host.Response) {
	r, ok := resp.(*host.OpenFileResponse)
	if !ok || r.Canceled {
		return
	}
	_, data, err := platform.DecodeDataURI(r.Src)
	if err != nil {
		pw.logger.Warn("imported content unreadable", zap.String("path", r.FilePath), zap.Error(err))
		dialog.ShowError(err, pw.window)
		return
	}

	track := pw.selectedTrack()
	if track == nil {
		track = pw.project.AddTrack()
	}
	name := r.FileName
	if r.Tags != nil && r.Tags.Title != "" {
		name = r.Tags.Title
	}
	file := model.TrackFile{TrackFileSkeleton: track.AddFile(name, r.FilePath), Type: r.Type, Data: data}
	pw.media[file.Skeleton()] = file
	pw.logger.Debug("media imported",
		zap.String("path", r.FilePath),
		zap.String("type", r.Type),
		zap.String("size", humanize.Bytes(uint64(r.Size))),
		zap.Int("track", track.ID))
	pw.refresh()
}

func (pw *ProjectWindow) selectedTrack() *model.Track {
	if pw.selected < 0 || pw.selected >= len(pw.project.Tracks) {
		return nil
	}
	return &pw.project.Tracks[pw.selected]
}

func (pw *ProjectWindow) onAddTrack() {
	pw.project.AddTrack()
	pw.refresh()
}

func (pw *ProjectWindow) onRemoveTrack() {
	t := pw.selectedTrack()
	if t == nil {
		return
	}
	pw.project.RemoveTrack(t.ID)
	pw.selected = -1
	pw.list.UnselectAll()
	pw.refresh()
}

func (pw *ProjectWindow) onReveal() {
	if !pw.project.IsSaved() {
		return
	}
	dir := platform.ProjectDir(pw.project.Location, pw.project.Name)
	target := filepath.Join(dir, platform.DescriptorName(pw.project.Name))
	if err := platform.RevealInFileManager(target); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", pw.loc.GetText(KeyErrorRevealing), err), pw.window)
	}
}

func (pw *ProjectWindow) onPreferences() {
	if pw.settings == nil {
		return
	}
	NewPreferencesDialog(pw.settings, pw.loc, pw.window).Show()
}
