package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/proteus-audio/proteus/internal/model"
	"github.com/proteus-audio/proteus/internal/platform"
)

// FormatVersion is written into every descriptor.
const FormatVersion = 1

const (
	trackRecordPrefix = "track-"
	trackRecordSuffix = ".json"
)

// Descriptor is the marker file identifying a directory as a saved project.
type Descriptor struct {
	Format int    `json:"format"`
	Name   string `json:"name"`
}

// trackRecord is the on-disk shape of one track.
type trackRecord struct {
	ID        int                       `json:"id"`
	Selection *int                      `json:"selection,omitempty"`
	Files     []model.TrackFileSkeleton `json:"files"`
}

// TrackRecordName returns the record file name for a track id.
func TrackRecordName(id int) string {
	return trackRecordPrefix + strconv.Itoa(id) + trackRecordSuffix
}

// parseTrackRecordName extracts the id from a record file name. Only the
// canonical spelling produced by TrackRecordName is a record, so
// "track-01.json" can never alias "track-1.json".
func parseTrackRecordName(name string) (int, bool) {
	if !strings.HasPrefix(name, trackRecordPrefix) || !strings.HasSuffix(name, trackRecordSuffix) {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, trackRecordPrefix), trackRecordSuffix)
	id, err := strconv.Atoi(raw)
	if err != nil || TrackRecordName(id) != name {
		return 0, false
	}
	return id, true
}

func encodeTrack(t model.Track) ([]byte, error) {
	files := t.Files
	if files == nil {
		files = []model.TrackFileSkeleton{}
	}
	data, err := json.MarshalIndent(trackRecord{ID: t.ID, Selection: t.Selection, Files: files}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeTrack(path string, wantID int) (model.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Track{}, fmt.Errorf("read track record %s: %w: %w", filepath.Base(path), model.ErrIO, err)
	}

	var rec trackRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Track{}, fmt.Errorf("decode track record %s: %w: %w", filepath.Base(path), model.ErrIO, err)
	}
	if rec.ID != wantID {
		return model.Track{}, fmt.Errorf("track record %s holds id %d: %w", filepath.Base(path), rec.ID, model.ErrIO)
	}
	if rec.Files == nil {
		rec.Files = []model.TrackFileSkeleton{}
	}
	return model.Track{ID: rec.ID, Selection: rec.Selection, Files: rec.Files}, nil
}

func encodeDescriptor(name string) ([]byte, error) {
	data, err := json.MarshalIndent(Descriptor{Format: FormatVersion, Name: name}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// readDescriptor locates and decodes the descriptor of projectDir.
// It prefers <name>.protproject and falls back to any descriptor in the
// directory, so a project whose directory was renamed still opens.
func readDescriptor(projectDir, name string) (*Descriptor, bool, error) {
	path := filepath.Join(projectDir, platform.DescriptorName(name))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		matches, globErr := filepath.Glob(filepath.Join(projectDir, "*"+platform.ProjectExtension))
		if globErr != nil || len(matches) == 0 {
			return nil, false, nil
		}
		path = matches[0]
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, false, fmt.Errorf("read descriptor %s: %w: %w", filepath.Base(path), model.ErrIO, err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false, fmt.Errorf("decode descriptor %s: %w: %w", filepath.Base(path), model.ErrIO, err)
	}
	if d.Format < 1 || d.Format > FormatVersion {
		return nil, false, fmt.Errorf("descriptor %s has unsupported format %d: %w", filepath.Base(path), d.Format, model.ErrIO)
	}
	return &d, true, nil
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, platform.DefaultFilePermissions); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
