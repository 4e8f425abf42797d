package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "proteus.png"
)

// LoadLogoResource loads the application icon next to the executable and
// falls back to a theme icon when it is not installed.
func LoadLogoResource() fyne.Resource {
	res, err := fyne.LoadResourceFromPath(AppIcon)
	if err != nil {
		return theme.MediaMusicIcon()
	}
	return res
}
