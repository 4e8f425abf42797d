package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/proteus-audio/proteus/internal/model"
)

type fakeSurface struct {
	id      SurfaceID
	project *model.Project
	closed  bool
}

func (s *fakeSurface) ID() SurfaceID { return s.id }
func (s *fakeSurface) Close()        { s.closed = true }

type fakeFactory struct {
	mu       sync.Mutex
	created  []*fakeSurface
	failWith error
}

func (f *fakeFactory) NewSurface(_ context.Context, id SurfaceID, project *model.Project) (Surface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	s := &fakeSurface{id: id, project: project}
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// dialogAnswer is the scripted outcome of one dialog.
type dialogAnswer struct {
	path string
	ok   bool
	err  error
}

var canceled = dialogAnswer{}

func chosen(path string) dialogAnswer { return dialogAnswer{path: path, ok: true} }

type fakeDialogs struct {
	file, dir, saveAs, open dialogAnswer
	seed                    string
	extension               string
	calls                   atomic.Int32
	owner                   Surface       // owner of the last OpenProject call
	block                   chan struct{} // when set, ChooseFile waits on it
}

func (d *fakeDialogs) ChooseFile(ctx context.Context, _ Surface) (string, bool, error) {
	d.calls.Add(1)
	if d.block != nil {
		select {
		case <-d.block:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
	return d.file.path, d.file.ok, d.file.err
}

func (d *fakeDialogs) ChooseDirectory(context.Context, Surface) (string, bool, error) {
	d.calls.Add(1)
	return d.dir.path, d.dir.ok, d.dir.err
}

func (d *fakeDialogs) SaveProjectAs(_ context.Context, _ Surface, defaultName string) (string, bool, error) {
	d.calls.Add(1)
	d.seed = defaultName
	return d.saveAs.path, d.saveAs.ok, d.saveAs.err
}

func (d *fakeDialogs) OpenProject(_ context.Context, owner Surface, extension string) (string, bool, error) {
	d.calls.Add(1)
	d.owner = owner
	d.extension = extension
	return d.open.path, d.open.ok, d.open.err
}

var errDialogBroken = errors.New("dialog backend unavailable")
