package host

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proteus-audio/proteus/internal/model"
	"github.com/proteus-audio/proteus/internal/persist"
	"github.com/proteus-audio/proteus/internal/platform"
)

// DefaultProjectName seeds the save-as dialog of a project without a name.
const DefaultProjectName = "prot"

// ErrUnknownSurface is returned for requests naming a surface that is not open.
var ErrUnknownSurface = errors.New("unknown surface")

// Options configures an Orchestrator.
type Options struct {
	DefaultProjectName string
	// NameSource, when set, is asked for the save-as seed on every save and
	// wins over DefaultProjectName unless it returns "".
	NameSource func() string
	Logger     *zap.Logger
}

// Orchestrator handles surface requests. Requests are independent; a request
// blocked on a dialog does not hold any lock.
type Orchestrator struct {
	dialogs     Dialogs
	factory     SurfaceFactory
	registry    *Registry
	defaultName string
	nameSource  func() string
	logger      *zap.Logger
}

// NewOrchestrator creates an orchestrator with an empty registry.
func NewOrchestrator(dialogs Dialogs, factory SurfaceFactory, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := opts.DefaultProjectName
	if name == "" {
		name = DefaultProjectName
	}
	return &Orchestrator{
		dialogs:     dialogs,
		factory:     factory,
		registry:    NewRegistry(),
		defaultName: name,
		nameSource:  opts.NameSource,
		logger:      logger.Named("host"),
	}
}

// Registry exposes the surface registry.
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Handle dispatches req on behalf of the surface with the given id. An empty
// id is an application-level request; dialogs then attach to the latest
// surface, created first when none is open.
func (o *Orchestrator) Handle(ctx context.Context, id SurfaceID, req Request) (Response, error) {
	var owner Surface
	if id != "" {
		s, ok := o.registry.Get(id)
		if !ok {
			return nil, fmt.Errorf("%s request from %s: %w", req.Kind(), id, ErrUnknownSurface)
		}
		owner = s
	} else if req.Kind().IsDialogBacked() {
		s, err := o.EnsureSurface(ctx)
		if err != nil {
			return nil, err
		}
		owner = s
	}

	switch r := req.(type) {
	case OpenFileRequest:
		resp, err := o.OpenFile(ctx, owner)
		if err != nil {
			return nil, err
		}
		return resp, nil
	case ChooseDirRequest:
		resp, err := o.ChooseDirectory(ctx, owner)
		if err != nil {
			return nil, err
		}
		return resp, nil
	case NewWindowRequest:
		sid, err := o.NewWindow(ctx, nil)
		if err != nil {
			return nil, err
		}
		return &NewWindowResponse{Surface: sid}, nil
	case SaveRequest:
		resp, err := o.SaveProject(ctx, owner, r.Project)
		if err != nil {
			return nil, err
		}
		return resp, nil
	case LoadRequest:
		resp, err := o.LoadProject(ctx, owner)
		if err != nil {
			return nil, err
		}
		if id == "" && resp.Found {
			// nobody asked for it in place; give the project its own window
			if _, err := o.NewWindow(ctx, resp.Project()); err != nil {
				return nil, err
			}
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("unsupported request %T", req)
	}
}

// OpenFile lets the user pick a file and returns its content inline.
func (o *Orchestrator) OpenFile(ctx context.Context, owner Surface) (*OpenFileResponse, error) {
	path, ok, err := o.dialogs.ChooseFile(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("open file dialog: %w", err)
	}
	if !ok {
		return &OpenFileResponse{Canceled: true}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", path, model.ErrIO, err)
	}

	mediaType := platform.DetectMediaType(path, data)
	resp := &OpenFileResponse{
		FileName: platform.DisplayName(path),
		FilePath: path,
		Src:      platform.DataURI(mediaType, data),
		Type:     mediaType,
		Size:     int64(len(data)),
	}
	if platform.IsAudio(mediaType) {
		resp.Tags = platform.ReadAudioTags(data)
	}

	o.logger.Debug("file opened",
		zap.String("path", path),
		zap.String("type", mediaType),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return resp, nil
}

// ChooseDirectory lets the user pick a directory.
func (o *Orchestrator) ChooseDirectory(ctx context.Context, owner Surface) (*ChooseDirResponse, error) {
	path, ok, err := o.dialogs.ChooseDirectory(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("choose directory dialog: %w", err)
	}
	if !ok {
		return &ChooseDirResponse{Canceled: true}, nil
	}
	return &ChooseDirResponse{Path: platform.EnsureTrailingSeparator(path)}, nil
}

// SaveProject persists project and returns the state reloaded from disk.
// An unsaved project goes through the save-as dialog first.
func (o *Orchestrator) SaveProject(ctx context.Context, owner Surface, project model.Project) (*ProjectResponse, error) {
	var dir, name string
	if project.Location == "" {
		seed := project.Name
		if seed == "" {
			seed = o.seedName()
		}
		target, ok, err := o.dialogs.SaveProjectAs(ctx, owner, seed)
		if err != nil {
			return nil, fmt.Errorf("save dialog: %w", err)
		}
		if !ok {
			return &ProjectResponse{Op: model.RequestSave, Location: project.Location}, nil
		}
		dir, name = platform.SplitSaveTarget(target)
	} else {
		dir, name = platform.SplitLocation(project.Location, project.Name)
	}
	if name == "" {
		name = o.seedName()
	}

	if err := persist.Save(project.Tracks, dir, name); err != nil {
		return nil, fmt.Errorf("save project %s: %w", name, err)
	}

	// Read back what is now on disk so the caller holds exactly the stored state.
	tracks, found, err := persist.Load(dir, name)
	if err != nil {
		return nil, fmt.Errorf("reload project %s: %w", name, err)
	}
	if !found {
		return nil, fmt.Errorf("project %s missing after save: %w", name, model.ErrIO)
	}

	o.logger.Info("project saved",
		zap.String("name", name),
		zap.String("dir", dir),
		zap.Int("tracks", len(tracks)))
	return &ProjectResponse{
		Op:       model.RequestSave,
		Tracks:   tracks,
		Found:    true,
		Location: platform.EnsureTrailingSeparator(dir),
		Name:     name,
	}, nil
}

func (o *Orchestrator) seedName() string {
	if o.nameSource != nil {
		if name := o.nameSource(); name != "" {
			return name
		}
	}
	return o.defaultName
}

// LoadProject lets the user pick a project descriptor and loads it.
// A selection that is not a descriptor is a no-op.
func (o *Orchestrator) LoadProject(ctx context.Context, owner Surface) (*ProjectResponse, error) {
	path, ok, err := o.dialogs.OpenProject(ctx, owner, platform.ProjectExtension)
	if err != nil {
		return nil, fmt.Errorf("load dialog: %w", err)
	}
	if !ok {
		return &ProjectResponse{Op: model.RequestLoad}, nil
	}

	if !platform.HasProjectExtension(path) {
		o.logger.Info("ignoring selection", zap.String("path", path), zap.Error(model.ErrNotAProject))
		return &ProjectResponse{Op: model.RequestLoad}, nil
	}

	resp, err := o.loadPath(path)
	if err != nil {
		return nil, err
	}
	resp.Op = model.RequestLoad
	return resp, nil
}

// OpenProjectFile loads the project at path, as opened from the OS, and
// creates a surface for it. Nothing happens when path holds no project.
func (o *Orchestrator) OpenProjectFile(ctx context.Context, path string) (bool, error) {
	resp, err := o.loadPath(path)
	if err != nil {
		if errors.Is(err, model.ErrNotAProject) {
			o.logger.Info("ignoring open request", zap.String("path", path), zap.Error(err))
			return false, nil
		}
		return false, err
	}
	if !resp.Found {
		o.logger.Info("no project at path", zap.String("path", path))
		return false, nil
	}

	if _, err := o.NewWindow(ctx, resp.Project()); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Orchestrator) loadPath(path string) (*ProjectResponse, error) {
	dir, name, ok := platform.SplitProjectPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, model.ErrNotAProject)
	}

	tracks, found, err := persist.Load(dir, name)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", name, err)
	}
	if !found {
		return &ProjectResponse{Location: platform.EnsureTrailingSeparator(dir)}, nil
	}

	o.logger.Info("project loaded",
		zap.String("name", name),
		zap.String("dir", dir),
		zap.Int("tracks", len(tracks)))
	return &ProjectResponse{
		Tracks:   tracks,
		Found:    true,
		Location: platform.EnsureTrailingSeparator(dir),
		Name:     name,
	}, nil
}

// NewWindow creates and registers a surface. project may be nil.
func (o *Orchestrator) NewWindow(ctx context.Context, project *model.Project) (SurfaceID, error) {
	id := SurfaceID(uuid.NewString())
	s, err := o.factory.NewSurface(ctx, id, project)
	if err != nil {
		return "", fmt.Errorf("create surface: %w", err)
	}
	o.registry.Add(s)
	o.logger.Debug("surface created", zap.String("surface", string(id)), zap.Bool("seeded", project != nil))
	return id, nil
}

// Activate creates a window when none is open and reports whether it did.
func (o *Orchestrator) Activate(ctx context.Context) (bool, error) {
	if o.registry.Count() > 0 {
		return false, nil
	}
	if _, err := o.NewWindow(ctx, nil); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureSurface returns the latest open surface, creating one if none is open.
func (o *Orchestrator) EnsureSurface(ctx context.Context) (Surface, error) {
	if s, ok := o.registry.Latest(); ok {
		return s, nil
	}
	id, err := o.NewWindow(ctx, nil)
	if err != nil {
		return nil, err
	}
	s, _ := o.registry.Get(id)
	return s, nil
}

// SurfaceClosed unregisters a closed surface and reports whether it was the last one.
func (o *Orchestrator) SurfaceClosed(id SurfaceID) bool {
	remaining := o.registry.Remove(id)
	o.logger.Debug("surface closed", zap.String("surface", string(id)), zap.Int("remaining", remaining))
	return remaining == 0
}

// WindowCount returns the number of open surfaces.
func (o *Orchestrator) WindowCount() int {
	return o.registry.Count()
}
