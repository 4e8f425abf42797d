package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "nested", "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if !DirExists(testDir) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), DefaultFilePermissions); err != nil {
		t.Fatal(err)
	}

	err := CreateDirectoryIfNotExists(blocker)
	if err == nil {
		t.Fatal("Expected error when a file occupies the directory path")
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGetHomeProjectsDir(t *testing.T) {
	dir, err := GetHomeProjectsDir()
	if err != nil {
		t.Fatalf("Failed to get projects directory: %v", err)
	}

	if filepath.Base(dir) != ProjectsFolderName {
		t.Errorf("Expected directory to end with %q, got: %s", ProjectsFolderName, dir)
	}
}

func TestRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	if got := RuntimeDir(); got != filepath.Join("/run/user/1000", "proteus") {
		t.Errorf("RuntimeDir() = %s", got)
	}
}

func TestRevealInFileManager_NonExistentFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent.protproject")

	err := RevealInFileManager(missing)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}
