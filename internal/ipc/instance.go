package ipc

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/proteus-audio/proteus/internal/platform"
)

// Instance is the single-instance lock held by the running editor.
type Instance struct {
	lock *flock.Flock
}

// AcquireInstance tries to take the lock at lockPath. primary is false when
// another process holds it; the caller should forward its work over IPC.
func AcquireInstance(lockPath string) (inst *Instance, primary bool, err error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(lockPath)); err != nil {
		return nil, false, fmt.Errorf("ensure runtime directory: %w", err)
	}

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return &Instance{lock: lock}, true, nil
}

// Path returns the lock file path.
func (i *Instance) Path() string {
	return i.lock.Path()
}

// Release drops the lock.
func (i *Instance) Release() error {
	return i.lock.Unlock()
}
