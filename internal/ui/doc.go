package ui

// Package ui contains the Fyne-based user interface of the feed client.
// It wires screens (splash, login, registration, dashboard, profile) to the
// feed, composer, image loader and shrinker services. All UI strings are
// localized via Localization.
