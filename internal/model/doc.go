package model

// Package model defines the project data structures shared by the persistence
// engine, the host orchestrator and the UI surfaces: projects, tracks, file
// skeletons, request kinds and the error sentinels used across the boundary.
