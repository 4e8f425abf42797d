package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EditorTheme tightens the default theme for dense track lists
type EditorTheme struct{}

// NewEditorTheme creates the editor theme
func NewEditorTheme() fyne.Theme {
	return &EditorTheme{}
}

// Color returns theme colors
func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 137, B: 123, A: 255} // teal
	case theme.ColorNameSelection:
		if variant == theme.VariantDark {
			return color.RGBA{R: 0, G: 105, B: 92, A: 160}
		}
		return color.RGBA{R: 178, G: 223, B: 219, A: 200}
	case theme.ColorNameError:
		return color.RGBA{R: 198, G: 40, B: 40, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes; list rows are packed tighter than the default
func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameSubHeadingText:
		return 15
	}

	return theme.DefaultTheme().Size(name)
}
