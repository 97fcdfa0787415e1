package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Scrolly palette
var (
	ColorAccent     = color.RGBA{R: 77, G: 182, B: 172, A: 255}  // #4DB6AC
	ColorHeader     = color.RGBA{R: 168, G: 245, B: 232, A: 255} // #A8F5E8
	ColorLike       = color.RGBA{R: 255, G: 107, B: 107, A: 255} // #FF6B6B
	ColorTextMain   = color.RGBA{R: 26, G: 26, B: 26, A: 255}    // #1A1A1A
	ColorTextMuted  = color.RGBA{R: 118, G: 118, B: 118, A: 255} // #767676
	ColorBackground = color.RGBA{R: 245, G: 245, B: 245, A: 255} // #F5F5F5
	ColorBorder     = color.RGBA{R: 224, G: 224, B: 224, A: 255} // #E0E0E0
	ColorInactive   = color.RGBA{R: 176, G: 190, B: 197, A: 255} // #B0BEC5
)

// ScrollyTheme applies the Scrolly palette on top of the default theme,
// with spacing tightened for phone screens.
type ScrollyTheme struct{}

func NewScrollyTheme() fyne.Theme {
	return &ScrollyTheme{}
}

func (t *ScrollyTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return ColorAccent
	case theme.ColorNameFocus:
		return color.NRGBA{R: 77, G: 182, B: 172, A: 0x66}
	case theme.ColorNameError:
		return ColorLike
	case theme.ColorNameSeparator, theme.ColorNameInputBorder:
		if variant == theme.VariantDark {
			break
		}
		return ColorBorder
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return ColorTextMuted
	case theme.ColorNameDisabledButton:
		if variant == theme.VariantDark {
			break
		}
		return ColorInactive
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return ColorBackground
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.White
		}
		return ColorTextMain
	}

	return theme.DefaultTheme().Color(name, variant)
}

func (t *ScrollyTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ScrollyTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size rounds inputs and tightens spacing for the feed
func (t *ScrollyTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 12
	case theme.SizeNameSelectionRadius:
		return 8
	}

	return theme.DefaultTheme().Size(name)
}
