package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteus-audio/proteus/internal/model"
)

func intPtr(v int) *int { return &v }

func demoTracks() []model.Track {
	return []model.Track{
		{ID: 1, Files: []model.TrackFileSkeleton{{ID: 1, ParentID: 1, Name: "a.wav", Path: "/tmp/a.wav"}}},
	}
}

// snapshot returns file name -> content for every file under dir.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestSaveLoad_DemoScenario(t *testing.T) {
	out := t.TempDir()

	require.NoError(t, Save(demoTracks(), out, "Demo"))

	assert.FileExists(t, filepath.Join(out, "Demo", "Demo.protproject"))
	assert.FileExists(t, filepath.Join(out, "Demo", "track-1.json"))

	tracks, found, err := Load(out, "Demo")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, demoTracks(), tracks)
}

func TestSaveLoad_RoundTripOrdersByID(t *testing.T) {
	out := t.TempDir()
	in := []model.Track{
		{ID: 10, Selection: intPtr(0), Files: []model.TrackFileSkeleton{
			{ID: 2, ParentID: 10, Name: "b.wav", Path: "/media/b.wav"},
			{ID: 1, ParentID: 10, Name: "a.wav", Path: "/media/a.wav"},
		}},
		{ID: 2, Files: []model.TrackFileSkeleton{}},
		{ID: 7, Selection: intPtr(3), Files: []model.TrackFileSkeleton{{ID: 1, ParentID: 7, Name: "c.mp3", Path: "/media/c.mp3"}}},
	}

	require.NoError(t, Save(in, out, "Mix"))

	tracks, found, err := Load(out, "Mix")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, tracks, 3)

	assert.Equal(t, []int{2, 7, 10}, []int{tracks[0].ID, tracks[1].ID, tracks[2].ID})
	assert.Equal(t, in[0], tracks[2], "file order inside a track is preserved")
	assert.Nil(t, tracks[0].Selection)
	require.NotNil(t, tracks[1].Selection)
	assert.Equal(t, 3, *tracks[1].Selection)
}

func TestSave_Idempotent(t *testing.T) {
	out := t.TempDir()

	require.NoError(t, Save(demoTracks(), out, "Demo"))
	first := snapshot(t, out)

	require.NoError(t, Save(demoTracks(), out, "Demo"))
	second := snapshot(t, out)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestSave_OverwritesAndPrunes(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save([]model.Track{{ID: 1}, {ID: 2}}, out, "Demo"))

	updated := []model.Track{{ID: 2, Files: []model.TrackFileSkeleton{{ID: 1, ParentID: 2, Name: "x.wav", Path: "/x.wav"}}}}
	require.NoError(t, Save(updated, out, "Demo"))

	assert.NoFileExists(t, filepath.Join(out, "Demo", "track-1.json"))

	tracks, found, err := Load(out, "Demo")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, updated, tracks)
}

func TestSave_RejectsCollidingIDs(t *testing.T) {
	out := t.TempDir()

	err := Save([]model.Track{{ID: 1}, {ID: 1}}, out, "Demo")
	require.ErrorIs(t, err, model.ErrDuplicateTrackID)
	assert.NoDirExists(t, filepath.Join(out, "Demo"), "nothing is written on collision")

	err = Save([]model.Track{{ID: 1, Files: []model.TrackFileSkeleton{{ID: 3, ParentID: 1}, {ID: 3, ParentID: 1}}}}, out, "Demo")
	require.ErrorIs(t, err, model.ErrDuplicateFileID)
	require.ErrorIs(t, err, model.ErrInvalidProject)
}

func TestSave_CreatesIntermediateDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, Save(demoTracks(), out, "Demo"))
	_, found, err := Load(out, "Demo")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSave_IOError(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := Save(demoTracks(), blocker, "Demo")
	require.ErrorIs(t, err, model.ErrIO)
}

func TestSave_InvalidArguments(t *testing.T) {
	require.ErrorIs(t, Save(nil, t.TempDir(), "  "), model.ErrInvalidProject)
	require.ErrorIs(t, Save(nil, "", "Demo"), model.ErrInvalidProject)
}

func TestSave_RejectsNamesOutsideOneDirectory(t *testing.T) {
	for _, name := range []string{".", "..", "a/b", `a\b`, "../escape", " .. ", "..protproject"} {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			out := filepath.Join(root, "out")
			require.NoError(t, os.Mkdir(out, 0o755))
			unrelated := filepath.Join(root, "track-9.json")
			require.NoError(t, os.WriteFile(unrelated, []byte(`{"id":9,"files":[]}`), 0o644))
			before := snapshot(t, root)

			err := Save([]model.Track{{ID: 1}}, out, name)
			require.ErrorIs(t, err, model.ErrInvalidProject)
			assert.Equal(t, before, snapshot(t, root), "nothing written or removed")
			assert.Empty(t, dirNames(t, out))

			_, found, err := Load(out, name)
			require.ErrorIs(t, err, model.ErrInvalidProject)
			assert.False(t, found)
		})
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSave_NormalizesDescriptorExtension(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo.protproject"))

	assert.DirExists(t, filepath.Join(out, "Demo"))
	_, found, err := Load(out, "Demo.protproject")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLoad_MissingProject(t *testing.T) {
	root := t.TempDir()

	tracks, found, err := Load(root, "Nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, tracks)

	require.NoError(t, os.Mkdir(filepath.Join(root, "Empty"), 0o755))
	_, found, err = Load(root, "Empty")
	require.NoError(t, err)
	assert.False(t, found, "an empty directory is not a project")

	_, found, err = Load("", "Demo")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoad_DirectoryNeverSaved(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Loose")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track-1.json"), []byte(`{"id":1,"files":[]}`), 0o644))

	tracks, found, err := Load(root, "Loose")
	require.NoError(t, err)
	assert.False(t, found, "records without a descriptor are not a project")
	assert.Nil(t, tracks)
}

func TestLoad_EmptySavedProject(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(nil, out, "Blank"))

	tracks, found, err := Load(out, "Blank")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, tracks)
	assert.NotNil(t, tracks)
}

func TestLoad_CorruptRecord(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo"))
	require.NoError(t, os.WriteFile(filepath.Join(out, "Demo", "track-1.json"), []byte("{not json"), 0o644))

	tracks, found, err := Load(out, "Demo")
	require.ErrorIs(t, err, model.ErrIO)
	assert.False(t, found)
	assert.Nil(t, tracks)
}

func TestLoad_RecordIDMismatch(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo"))
	require.NoError(t, os.WriteFile(filepath.Join(out, "Demo", "track-5.json"), []byte(`{"id":6,"files":[]}`), 0o644))

	_, _, err := Load(out, "Demo")
	require.ErrorIs(t, err, model.ErrIO)
}

func TestLoad_CorruptDescriptor(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo"))
	require.NoError(t, os.WriteFile(filepath.Join(out, "Demo", "Demo.protproject"), []byte("garbage"), 0o644))

	_, _, err := Load(out, "Demo")
	require.ErrorIs(t, err, model.ErrIO)
}

func TestLoad_RenamedProjectDirectory(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo"))
	require.NoError(t, os.Rename(filepath.Join(out, "Demo"), filepath.Join(out, "Renamed")))

	tracks, found, err := Load(out, "Renamed")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, demoTracks(), tracks)
}

func TestLoad_IgnoresForeignFiles(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo"))
	dir := filepath.Join(out, "Demo")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track-abc.json"), []byte("??"), 0o644))

	tracks, found, err := Load(out, "Demo")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, tracks, 1)
}

func TestLoad_IgnoresNonCanonicalRecordNames(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, Save(demoTracks(), out, "Demo"))
	dir := filepath.Join(out, "Demo")
	for _, alias := range []string{"track-01.json", "track-+1.json", "track- 1.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, alias), []byte(`{"id":1,"files":[]}`), 0o644))
	}

	require.NoError(t, Save(demoTracks(), out, "Demo"))
	tracks, found, err := Load(out, "Demo")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, tracks, 1)
	assert.Equal(t, demoTracks(), tracks)
	require.NoError(t, model.ValidateTracks(tracks))
}

func TestTrackRecordName(t *testing.T) {
	assert.Equal(t, "track-12.json", TrackRecordName(12))

	id, ok := parseTrackRecordName("track-12.json")
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	_, ok = parseTrackRecordName("track-.json")
	assert.False(t, ok)
	_, ok = parseTrackRecordName("Demo.protproject")
	assert.False(t, ok)
	_, ok = parseTrackRecordName("track-012.json")
	assert.False(t, ok)

	id, ok = parseTrackRecordName("track--3.json")
	assert.True(t, ok, "negative ids keep their canonical spelling")
	assert.Equal(t, -3, id)
}
