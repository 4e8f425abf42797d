package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/proteus-audio/proteus/internal/config"
)

// PreferencesDialog edits the user settings stored in Fyne preferences
type PreferencesDialog struct {
	settings *config.Settings
	loc      *Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	defaultNameEntry *widget.Entry
	languageSelect   *widget.Select
	languageCodes    map[string]string // display name -> code
}

// NewPreferencesDialog creates a new preferences dialog
func NewPreferencesDialog(settings *config.Settings, loc *Localization, window fyne.Window) *PreferencesDialog {
	pd := &PreferencesDialog{
		settings: settings,
		loc:      loc,
		window:   window,
	}

	pd.createUI()
	return pd
}

// Show displays the dialog with the current values
func (pd *PreferencesDialog) Show() {
	pd.loadCurrentSettings()
	pd.dialog.Show()
}

func (pd *PreferencesDialog) createUI() {
	t := pd.loc.GetText

	pd.defaultNameEntry = widget.NewEntry()

	pd.languageCodes = make(map[string]string)
	labels := make([]string, 0)
	for code, label := range pd.settings.GetLanguageOptions() {
		pd.languageCodes[label] = code
		labels = append(labels, label)
	}
	sort.Strings(labels)
	pd.languageSelect = widget.NewSelect(labels, nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyDefaultName)+":"),
		pd.defaultNameEntry,
		widget.NewLabel(t(KeyLanguage)+":"),
		pd.languageSelect,
	)

	pd.dialog = dialog.NewCustomConfirm(
		t(KeyPreferences),
		t(KeySave),
		t(KeyCancel),
		form,
		pd.onSave,
		pd.window,
	)
	pd.dialog.Resize(fyne.NewSize(PreferencesWidth, PreferencesHeight))
}

func (pd *PreferencesDialog) loadCurrentSettings() {
	pd.defaultNameEntry.SetText(pd.settings.GetDefaultProjectName())
	current := pd.settings.GetLanguage()
	for label, code := range pd.languageCodes {
		if code == current {
			pd.languageSelect.SetSelected(label)
		}
	}
}

func (pd *PreferencesDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	pd.settings.SetDefaultProjectName(pd.defaultNameEntry.Text)

	if code, ok := pd.languageCodes[pd.languageSelect.Selected]; ok && code != pd.settings.GetLanguage() {
		pd.settings.SetLanguage(code)
		dialog.ShowInformation(pd.loc.GetText(KeyPreferences), pd.loc.GetText(KeyRestartForLangMsg), pd.window)
		return
	}

	dialog.ShowInformation(pd.loc.GetText(KeyPreferences), pd.loc.GetText(KeySettingsSaved), pd.window)
}
