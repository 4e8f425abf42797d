package model

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks a directory or record that is unreadable, unwritable or corrupt.
	ErrIO = errors.New("project i/o error")

	// ErrNotAProject marks a path that lacks the project descriptor marker.
	ErrNotAProject = errors.New("not a project")

	// ErrInvalidProject marks in-memory project data that cannot be persisted.
	ErrInvalidProject = errors.New("invalid project")

	ErrDuplicateTrackID = fmt.Errorf("duplicate track id: %w", ErrInvalidProject)
	ErrDuplicateFileID  = fmt.Errorf("duplicate file id: %w", ErrInvalidProject)
)
