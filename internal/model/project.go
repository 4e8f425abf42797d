package model

import (
	"fmt"
	"sort"
)

// TrackFileSkeleton is the persisted, content-free reference to a source media file.
type TrackFileSkeleton struct {
	ID       int    `json:"id"`
	ParentID int    `json:"parentId"` // id of the owning track
	Name     string `json:"name"`
	Path     string `json:"path"` // absolute source path at time of reference
}

// TrackFile is a skeleton enriched with loaded content. Only the skeleton survives a save.
type TrackFile struct {
	TrackFileSkeleton
	Type string `json:"type,omitempty"`
	Data []byte `json:"-"`
}

// Skeleton strips the runtime content.
func (f TrackFile) Skeleton() TrackFileSkeleton {
	return f.TrackFileSkeleton
}

// Track is a lane holding an ordered list of file references.
type Track struct {
	ID        int                 `json:"id"`
	Selection *int                `json:"selection,omitempty"`
	Files     []TrackFileSkeleton `json:"files"`
}

// Project is the persisted unit of work.
type Project struct {
	Name     string  `json:"name"`
	Location string  `json:"location"` // empty until first save
	Tracks   []Track `json:"tracks"`
}

// NewProject creates an empty, unsaved project.
func NewProject() *Project {
	return &Project{Tracks: make([]Track, 0)}
}

// IsSaved reports whether the project has a location on disk.
func (p *Project) IsSaved() bool {
	return p.Location != ""
}

// AddTrack appends a track with the next free id and returns it.
func (p *Project) AddTrack() *Track {
	next := 1
	for _, t := range p.Tracks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	p.Tracks = append(p.Tracks, Track{ID: next, Files: make([]TrackFileSkeleton, 0)})
	return &p.Tracks[len(p.Tracks)-1]
}

// FindTrack returns the track with the given id.
func (p *Project) FindTrack(id int) (*Track, bool) {
	for i := range p.Tracks {
		if p.Tracks[i].ID == id {
			return &p.Tracks[i], true
		}
	}
	return nil, false
}

// RemoveTrack deletes the track with the given id and reports whether it existed.
func (p *Project) RemoveTrack(id int) bool {
	for i := range p.Tracks {
		if p.Tracks[i].ID == id {
			p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (p *Project) Clone() Project {
	c := Project{Name: p.Name, Location: p.Location, Tracks: make([]Track, len(p.Tracks))}
	for i, t := range p.Tracks {
		ct := Track{ID: t.ID, Files: make([]TrackFileSkeleton, len(t.Files))}
		copy(ct.Files, t.Files)
		if t.Selection != nil {
			sel := *t.Selection
			ct.Selection = &sel
		}
		c.Tracks[i] = ct
	}
	return c
}

// AddFile appends a skeleton for name/path with the next free id in the track.
func (t *Track) AddFile(name, path string) TrackFileSkeleton {
	next := 1
	for _, f := range t.Files {
		if f.ID >= next {
			next = f.ID + 1
		}
	}
	f := TrackFileSkeleton{ID: next, ParentID: t.ID, Name: name, Path: path}
	t.Files = append(t.Files, f)
	return f
}

// ValidateTracks checks id uniqueness: track ids within the slice and file
// ids within each track.
func ValidateTracks(tracks []Track) error {
	seenTracks := make(map[int]struct{}, len(tracks))
	for _, t := range tracks {
		if _, dup := seenTracks[t.ID]; dup {
			return fmt.Errorf("track %d: %w", t.ID, ErrDuplicateTrackID)
		}
		seenTracks[t.ID] = struct{}{}

		seenFiles := make(map[int]struct{}, len(t.Files))
		for _, f := range t.Files {
			if _, dup := seenFiles[f.ID]; dup {
				return fmt.Errorf("track %d file %d: %w", t.ID, f.ID, ErrDuplicateFileID)
			}
			seenFiles[f.ID] = struct{}{}
		}
	}
	return nil
}

// SortTracks orders tracks by id ascending in place.
func SortTracks(tracks []Track) {
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].ID < tracks[j].ID })
}
