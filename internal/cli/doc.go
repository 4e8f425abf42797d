// Package cli holds the cobra commands of the proteus binary: running the
// editor (or forwarding to the instance already running), inspecting a saved
// project from the terminal, and printing version and configuration.
package cli
