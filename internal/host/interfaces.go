package host

import (
	"context"

	"github.com/proteus-audio/proteus/internal/model"
)

// SurfaceID identifies a UI surface (window) for the lifetime of the process.
type SurfaceID string

// Surface is a UI surface registered with the host.
type Surface interface {
	ID() SurfaceID
	Close()
}

// SurfaceFactory creates UI surfaces. project is nil for an empty document.
type SurfaceFactory interface {
	NewSurface(ctx context.Context, id SurfaceID, project *model.Project) (Surface, error)
}

// Dialogs shows native dialogs on behalf of a surface. owner may be nil.
// ok is false when the user canceled; err is reserved for genuine failures.
type Dialogs interface {
	// ChooseFile picks a single existing file.
	ChooseFile(ctx context.Context, owner Surface) (path string, ok bool, err error)

	// ChooseDirectory picks or creates a directory.
	ChooseDirectory(ctx context.Context, owner Surface) (path string, ok bool, err error)

	// SaveProjectAs asks where to save a project, seeded with defaultName.
	SaveProjectAs(ctx context.Context, owner Surface, defaultName string) (path string, ok bool, err error)

	// OpenProject picks a project descriptor file with the given extension.
	OpenProject(ctx context.Context, owner Surface, extension string) (path string, ok bool, err error)
}
