package config

import (
	"fyne.io/fyne/v2"

	"github.com/proteus-audio/proteus/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyLastProjectDir     = "last_project_directory"
	KeyDefaultProjectName = "default_project_name"
	KeyLanguage           = "app_language"
)

// Default values
const (
	DefaultLanguage = "system"
)

// Settings manages user preferences that change while the app runs
type Settings struct {
	app         fyne.App
	defaultName string
}

// NewSettings creates a new settings manager. defaultName is used when the
// user never chose a default project name.
func NewSettings(app fyne.App, defaultName string) *Settings {
	return &Settings{app: app, defaultName: defaultName}
}

// GetLastProjectDirectory returns the directory of the last saved or loaded project
func (s *Settings) GetLastProjectDirectory() string {
	dir := s.app.Preferences().String(KeyLastProjectDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeProjectsDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetLastProjectDirectory remembers the directory of the last saved or loaded project
func (s *Settings) SetLastProjectDirectory(dir string) {
	if dir == "" {
		return
	}
	s.app.Preferences().SetString(KeyLastProjectDir, dir)
}

// GetDefaultProjectName returns the name seeding the save-as dialog
func (s *Settings) GetDefaultProjectName() string {
	name := s.app.Preferences().String(KeyDefaultProjectName)
	if name == "" {
		return s.defaultName
	}
	return name
}

// SetDefaultProjectName sets the name seeding the save-as dialog
func (s *Settings) SetDefaultProjectName(name string) {
	name = platform.NormalizeProjectName(name)
	if name == "" {
		s.app.Preferences().RemoveValue(KeyDefaultProjectName)
		return
	}
	s.app.Preferences().SetString(KeyDefaultProjectName, name)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
