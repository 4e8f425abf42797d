// Package persist maps a project's track list to a directory on disk and back.
//
// A saved project is a directory named after the project holding a
// descriptor file (<name>.protproject) and one JSON record per track
// (track-<id>.json). Records are written atomically and keyed by track id,
// so re-saving overwrites rather than duplicates and a failed write is
// confined to a single track.
package persist
