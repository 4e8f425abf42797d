package platform

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ProjectExtension marks the project descriptor file inside a project directory
const ProjectExtension = ".protproject"

// EnsureTrailingSeparator appends the OS path separator when missing
func EnsureTrailingSeparator(dir string) string {
	if dir == "" || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// HasProjectExtension reports whether path ends with the descriptor extension
func HasProjectExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ProjectExtension)
}

// StripProjectExtension removes a trailing descriptor extension from name
func StripProjectExtension(name string) string {
	if HasProjectExtension(name) {
		return name[:len(name)-len(ProjectExtension)]
	}
	return name
}

// NormalizeProjectName returns the name used for the project directory:
// NFC-normalized, trimmed, with no descriptor extension.
func NormalizeProjectName(name string) string {
	return norm.NFC.String(strings.TrimSpace(StripProjectExtension(name)))
}

// DescriptorName returns the descriptor file name for a project
func DescriptorName(projectName string) string {
	return NormalizeProjectName(projectName) + ProjectExtension
}

// SplitSaveTarget derives parent directory and project name from a path
// typed into a save dialog ("/out/Demo" or "/out/Demo.protproject").
func SplitSaveTarget(target string) (dir, name string) {
	clean := filepath.Clean(target)
	return filepath.Dir(clean), NormalizeProjectName(filepath.Base(clean))
}

// SplitLocation derives parent directory and project name from a project's
// stored location. A location naming a descriptor file is treated as
// directory plus file name rather than a literal directory.
func SplitLocation(location, name string) (dir, projectName string) {
	if HasProjectExtension(location) {
		return SplitSaveTarget(location)
	}
	return filepath.Clean(location), NormalizeProjectName(name)
}

// SplitProjectPath derives parent directory and project name from a path
// opened by the user or the OS. It accepts a descriptor file
// ("/out/Demo/Demo.protproject") or the project directory ("/out/Demo").
// Any other path reports ok=false.
func SplitProjectPath(path string) (dir, name string, ok bool) {
	if path == "" {
		return "", "", false
	}
	clean := filepath.Clean(path)

	if HasProjectExtension(clean) {
		projectDir := filepath.Dir(clean)
		return filepath.Dir(projectDir), NormalizeProjectName(filepath.Base(projectDir)), true
	}

	if DirExists(clean) {
		return filepath.Dir(clean), NormalizeProjectName(filepath.Base(clean)), true
	}

	return "", "", false
}

// ProjectDir joins a parent directory and project name
func ProjectDir(dir, name string) string {
	return filepath.Join(dir, NormalizeProjectName(name))
}

// ValidProjectName reports whether a normalized name can be used as a single
// directory entry: not empty, not "." or "..", and free of path separators.
func ValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, filepath.Separator)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}
