package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "scrolly.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// AvatarPlaceholder is shown until a profile picture arrives
func AvatarPlaceholder() fyne.Resource {
	return theme.AccountIcon()
}

// ImagePlaceholder is shown until a post image arrives
func ImagePlaceholder() fyne.Resource {
	return theme.FileImageIcon()
}
