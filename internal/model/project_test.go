package model

import (
	"errors"
	"testing"
)

func TestNewProject(t *testing.T) {
	p := NewProject()

	if p.IsSaved() {
		t.Error("new project should not have a location")
	}
	if p.Tracks == nil || len(p.Tracks) != 0 {
		t.Errorf("expected empty track list, got %v", p.Tracks)
	}
}

func TestProject_AddTrackAndFile(t *testing.T) {
	p := NewProject()
	first := p.AddTrack()
	if first.ID != 1 {
		t.Fatalf("expected first track id 1, got %d", first.ID)
	}

	f := first.AddFile("a.wav", "/tmp/a.wav")
	if f.ID != 1 || f.ParentID != 1 {
		t.Errorf("unexpected skeleton %+v", f)
	}

	p.Tracks = append(p.Tracks, Track{ID: 7})
	next := p.AddTrack()
	if next.ID != 8 {
		t.Errorf("expected id after max to be 8, got %d", next.ID)
	}

	found, ok := p.FindTrack(1)
	if !ok || len(found.Files) != 1 {
		t.Fatalf("FindTrack(1) = %+v, %v", found, ok)
	}
	if _, ok := p.FindTrack(42); ok {
		t.Error("FindTrack(42) should report missing")
	}
}

func TestTrackFile_Skeleton(t *testing.T) {
	tf := TrackFile{
		TrackFileSkeleton: TrackFileSkeleton{ID: 2, ParentID: 3, Name: "b.wav", Path: "/x/b.wav"},
		Type:              "audio/wav",
		Data:              []byte{1, 2, 3},
	}

	got := tf.Skeleton()
	want := TrackFileSkeleton{ID: 2, ParentID: 3, Name: "b.wav", Path: "/x/b.wav"}
	if got != want {
		t.Errorf("Skeleton() = %+v, expected %+v", got, want)
	}
}

func TestValidateTracks(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []Track
		wantErr error
	}{
		{"empty", nil, nil},
		{"unique", []Track{{ID: 1}, {ID: 2, Files: []TrackFileSkeleton{{ID: 1, ParentID: 2}, {ID: 2, ParentID: 2}}}}, nil},
		{"same file id across tracks", []Track{{ID: 1, Files: []TrackFileSkeleton{{ID: 1, ParentID: 1}}}, {ID: 2, Files: []TrackFileSkeleton{{ID: 1, ParentID: 2}}}}, nil},
		{"duplicate track", []Track{{ID: 1}, {ID: 1}}, ErrDuplicateTrackID},
		{"duplicate file", []Track{{ID: 1, Files: []TrackFileSkeleton{{ID: 4, ParentID: 1}, {ID: 4, ParentID: 1}}}}, ErrDuplicateFileID},
	}

	for _, test := range tests {
		err := ValidateTracks(test.tracks)
		if test.wantErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.wantErr) {
			t.Errorf("%s: expected %v, got %v", test.name, test.wantErr, err)
		}
		if !errors.Is(err, ErrInvalidProject) {
			t.Errorf("%s: expected error to wrap ErrInvalidProject, got %v", test.name, err)
		}
	}
}

func TestSortTracks(t *testing.T) {
	tracks := []Track{{ID: 3}, {ID: 1}, {ID: 2}}
	SortTracks(tracks)

	for i, want := range []int{1, 2, 3} {
		if tracks[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, tracks[i].ID)
		}
	}
}

func TestProject_RemoveTrack(t *testing.T) {
	p := NewProject()
	p.AddTrack()
	p.AddTrack()

	if !p.RemoveTrack(1) {
		t.Fatal("expected track 1 to be removed")
	}
	if p.RemoveTrack(1) {
		t.Error("second removal should report false")
	}
	if len(p.Tracks) != 1 || p.Tracks[0].ID != 2 {
		t.Errorf("unexpected tracks after removal: %+v", p.Tracks)
	}
	if next := p.AddTrack(); next.ID != 3 {
		t.Errorf("expected next id 3, got %d", next.ID)
	}
}

func TestProject_Clone(t *testing.T) {
	sel := 1
	p := &Project{
		Name:     "Demo",
		Location: "/out/",
		Tracks: []Track{
			{ID: 1, Selection: &sel, Files: []TrackFileSkeleton{{ID: 1, ParentID: 1, Name: "a.wav", Path: "/a.wav"}}},
		},
	}

	c := p.Clone()
	c.Tracks[0].Files[0].Name = "changed.wav"
	*c.Tracks[0].Selection = 7
	c.Tracks = append(c.Tracks, Track{ID: 2})

	if p.Tracks[0].Files[0].Name != "a.wav" {
		t.Error("clone shares file slice with the original")
	}
	if *p.Tracks[0].Selection != 1 {
		t.Error("clone shares selection with the original")
	}
	if len(p.Tracks) != 1 {
		t.Error("clone shares track slice with the original")
	}
	if c.Name != "Demo" || c.Location != "/out/" {
		t.Errorf("clone lost metadata: %+v", c)
	}
}
