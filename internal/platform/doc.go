package platform

// Package platform contains OS/platform integration glue: structured project
// path derivation, directory creation, media type detection, data URIs, audio
// tag probing and OS reveal-in-file-manager.
