package host

// Package host implements the privileged side of the editor: it owns native
// dialogs and the filesystem, receives typed requests from UI surfaces, drives
// the persistence engine and keeps the registry of open surfaces.
