package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/proteus-audio/proteus/internal/model"
	"github.com/proteus-audio/proteus/internal/platform"
)

// Save writes tracks to directory/projectName, creating intermediate
// directories. Tracks with colliding ids and names that are not a single
// directory entry are rejected before anything is written. Records of tracks
// no longer present are removed.
func Save(tracks []model.Track, directory, projectName string) error {
	name, err := checkProjectName(projectName)
	if err != nil {
		return err
	}
	if directory == "" {
		return fmt.Errorf("empty project directory: %w", model.ErrInvalidProject)
	}
	if err := model.ValidateTracks(tracks); err != nil {
		return err
	}

	projectDir := platform.ProjectDir(directory, name)
	if err := platform.CreateDirectoryIfNotExists(projectDir); err != nil {
		return fmt.Errorf("create project directory %s: %w: %w", projectDir, model.ErrIO, err)
	}

	descriptor, err := encodeDescriptor(name)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w: %w", model.ErrIO, err)
	}
	if err := writeFileAtomic(filepath.Join(projectDir, platform.DescriptorName(name)), descriptor); err != nil {
		return fmt.Errorf("write descriptor: %w: %w", model.ErrIO, err)
	}

	keep := make(map[int]struct{}, len(tracks))
	for _, t := range tracks {
		data, err := encodeTrack(t)
		if err != nil {
			return fmt.Errorf("encode track %d: %w: %w", t.ID, model.ErrIO, err)
		}
		if err := writeFileAtomic(filepath.Join(projectDir, TrackRecordName(t.ID)), data); err != nil {
			return fmt.Errorf("write track %d: %w: %w", t.ID, model.ErrIO, err)
		}
		keep[t.ID] = struct{}{}
	}

	return pruneStale(projectDir, keep)
}

// Load reconstructs the tracks saved in directory/projectName, ordered by id.
// found is false when the directory does not exist or holds no descriptor.
// A descriptor without any track records is a saved empty project: found is
// true and tracks is empty. A record that exists but cannot be read or
// decoded is an error wrapping model.ErrIO; an unusable project name is an
// error wrapping model.ErrInvalidProject.
func Load(directory, projectName string) (tracks []model.Track, found bool, err error) {
	if platform.NormalizeProjectName(projectName) == "" || directory == "" {
		return nil, false, nil
	}
	name, err := checkProjectName(projectName)
	if err != nil {
		return nil, false, err
	}

	projectDir := platform.ProjectDir(directory, name)
	info, err := os.Stat(projectDir)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stat project directory %s: %w: %w", projectDir, model.ErrIO, err)
	}
	if !info.IsDir() {
		return nil, false, nil
	}

	if _, ok, err := readDescriptor(projectDir, name); err != nil || !ok {
		return nil, false, err
	}

	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, false, fmt.Errorf("list project directory %s: %w: %w", projectDir, model.ErrIO, err)
	}

	tracks = make([]model.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := parseTrackRecordName(entry.Name())
		if !ok {
			continue
		}
		t, err := decodeTrack(filepath.Join(projectDir, entry.Name()), id)
		if err != nil {
			return nil, false, err
		}
		tracks = append(tracks, t)
	}

	model.SortTracks(tracks)
	return tracks, true, nil
}

func checkProjectName(raw string) (string, error) {
	name := platform.NormalizeProjectName(raw)
	if name == "" {
		return "", fmt.Errorf("empty project name: %w", model.ErrInvalidProject)
	}
	if !platform.ValidProjectName(name) {
		return "", fmt.Errorf("project name %q: %w", name, model.ErrInvalidProject)
	}
	return name, nil
}

func pruneStale(projectDir string, keep map[int]struct{}) error {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return fmt.Errorf("list project directory %s: %w: %w", projectDir, model.ErrIO, err)
	}
	for _, entry := range entries {
		id, ok := parseTrackRecordName(entry.Name())
		if !ok || entry.IsDir() {
			continue
		}
		if _, live := keep[id]; live {
			continue
		}
		if err := os.Remove(filepath.Join(projectDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale track %d: %w: %w", id, model.ErrIO, err)
		}
	}
	return nil
}
