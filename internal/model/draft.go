package model

import "strings"

// DefaultImageFileName is used when the picker reports no file name
const DefaultImageFileName = "image.jpg"

// SelectedImage describes an image picked by the user
type SelectedImage struct {
	URI         string
	MimeType    string
	FileName    string
	RawByteSize int64
	Width       int
	Height      int
}

// FileNameOrDefault returns the file name, or DefaultImageFileName when empty
func (s *SelectedImage) FileNameOrDefault() string {
	if s.FileName == "" {
		return DefaultImageFileName
	}
	return s.FileName
}

// PostDraft is the user-editable content of a post before submission.
// ImageDataURI holds the data URI built for Image and is empty without one.
type PostDraft struct {
	Text         string
	Image        *SelectedImage
	ImageDataURI string
}

// TrimmedText returns the draft text without surrounding whitespace
func (d *PostDraft) TrimmedText() string {
	return strings.TrimSpace(d.Text)
}

// HasImage reports whether an image is attached
func (d *PostDraft) HasImage() bool {
	return d.Image != nil
}

// Submittable reports whether the draft has trimmed text or an image
func (d *PostDraft) Submittable() bool {
	return d.TrimmedText() != "" || d.HasImage()
}

// Reset clears text and image
func (d *PostDraft) Reset() {
	d.Text = ""
	d.Image = nil
	d.ImageDataURI = ""
}
