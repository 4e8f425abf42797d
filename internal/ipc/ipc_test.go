package ipc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteus-audio/proteus/internal/host"
	"github.com/proteus-audio/proteus/internal/model"
)

type fakeHost struct {
	mu      sync.Mutex
	opened  []string
	windows int
	openErr error
}

func (h *fakeHost) OpenProjectFile(_ context.Context, path string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.openErr != nil {
		return false, h.openErr
	}
	h.opened = append(h.opened, path)
	h.windows++
	return true, nil
}

func (h *fakeHost) NewWindow(context.Context, *model.Project) (host.SurfaceID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows++
	return "surface-1", nil
}

func (h *fakeHost) openedPaths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.opened...)
}

func (h *fakeHost) WindowCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.windows
}

// shortTempDir keeps socket paths under the Unix socket path limit.
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "pipc")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func startServer(t *testing.T, h Host) string {
	t.Helper()
	socket := filepath.Join(shortTempDir(t), "proteus.sock")
	srv, err := NewServer(context.Background(), socket, h, nil)
	require.NoError(t, err)
	srv.Serve()
	t.Cleanup(srv.Close)
	return socket
}

func TestServer_ForwardsRequests(t *testing.T) {
	h := &fakeHost{}
	socket := startServer(t, h)

	client, err := Dial(socket)
	require.NoError(t, err)
	defer client.Close()

	opened, err := client.OpenProject("/out/Demo/Demo.protproject")
	require.NoError(t, err)
	assert.True(t, opened.Opened)

	nw, err := client.NewWindow()
	require.NoError(t, err)
	assert.Equal(t, "surface-1", nw.Surface)

	status, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, status.Windows)
	assert.Equal(t, os.Getpid(), status.PID)

	assert.Equal(t, []string{"/out/Demo/Demo.protproject"}, h.openedPaths())
}

func TestServer_PropagatesErrors(t *testing.T) {
	socket := startServer(t, &fakeHost{openErr: errors.New("disk on fire")})

	client, err := Dial(socket)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.OpenProject("/out/Demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	_, err = client.OpenProject("")
	require.Error(t, err)
}

func TestServer_CloseRemovesSocket(t *testing.T) {
	socket := filepath.Join(shortTempDir(t), "proteus.sock")
	srv, err := NewServer(context.Background(), socket, &fakeHost{}, nil)
	require.NoError(t, err)
	srv.Serve()

	srv.Close()
	assert.NoFileExists(t, socket)

	_, err = Dial(socket)
	require.Error(t, err)
}

func TestNewServer_RequiresHost(t *testing.T) {
	_, err := NewServer(context.Background(), filepath.Join(shortTempDir(t), "x.sock"), nil, nil)
	require.Error(t, err)
}

func TestAcquireInstance(t *testing.T) {
	lockPath := filepath.Join(shortTempDir(t), "run", "proteus.lock")

	first, primary, err := AcquireInstance(lockPath)
	require.NoError(t, err)
	require.True(t, primary)
	assert.Equal(t, lockPath, first.Path())

	second, primary, err := AcquireInstance(lockPath)
	require.NoError(t, err)
	assert.False(t, primary)
	assert.Nil(t, second)

	require.NoError(t, first.Release())

	third, primary, err := AcquireInstance(lockPath)
	require.NoError(t, err)
	assert.True(t, primary)
	require.NoError(t, third.Release())
}
