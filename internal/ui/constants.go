package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconLiked    = "♥"
	IconUnliked  = "♡"
	IconComment  = "💬"
	IconShare    = "↗"
	IconCamera   = "📸"
	IconPhoto    = "📷"
	IconCompose  = "+"
	IconHome     = "⌂"
	IconProfile  = "👤"
	IconRefresh  = "⟳"
	IconBack     = "←"
	IconOpen     = "⤢"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	DimensionsFormat   = "%d×%d"
)

// Layout sizing
const (
	PostImageHeight float32 = 220
	PostRowMinWidth float32 = 300

	AvatarSize      float32 = 36
	StoryBubbleSize float32 = 64

	ProfileGridColumns         = 3
	ProfileTileSize    float32 = 100

	// Touch target minimum sizes (iOS/Android guidelines)
	MobileButtonHeight float32 = 48

	ComposeDialogWidth   float32 = 420
	ComposeDialogHeight  float32 = 360
	SettingsDialogWidth  float32 = 460
	SettingsDialogHeight float32 = 320
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 60
	ToastMargin   float32 = 20
	ToastAutoHide         = 3 * time.Second
)

// Delays
const (
	SplashDelay      = 3 * time.Second
	UIUpdateDebounce = 100 * time.Millisecond
	RequestTimeout   = 30 * time.Second
)
