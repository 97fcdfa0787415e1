package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/dustin/go-humanize"

	"github.com/ytget/scrolly/internal/compose"
	"github.com/ytget/scrolly/internal/compress"
	"github.com/ytget/scrolly/internal/model"
	"github.com/ytget/scrolly/internal/platform"
)

// pickerExtensions limits the file dialog to image files
var pickerExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ImagePicker opens images and attaches them through a size-checked
// attach function, offering to shrink images that are too large.
type ImagePicker struct {
	window       fyne.Window
	shrinker     compress.Compressor
	localization *Localization
	onBusy       func(busy bool, status string)
}

// NewImagePicker creates a picker for window
func NewImagePicker(window fyne.Window, shrinker compress.Compressor, localization *Localization) *ImagePicker {
	return &ImagePicker{
		window:       window,
		shrinker:     shrinker,
		localization: localization,
	}
}

// SetBusyCallback reports when a shrink starts and finishes
func (p *ImagePicker) SetBusyCallback(callback func(busy bool, status string)) {
	p.onBusy = callback
}

// Pick shows the file dialog. attach is the size-checked setter of the
// owning form; onAttached runs after a successful attach.
func (p *ImagePicker) Pick(attach func(model.SelectedImage, string) error, onAttached func(*platform.PickedImage)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if reader == nil {
			return
		}

		picked, err := platform.LoadSelectedImage(reader)
		if err != nil {
			log.Printf("Error reading picked image: %v", err)
			p.showError(p.localization.Format(KeyImageReadFailed, err.Error()))
			return
		}
		p.Attach(picked, attach, onAttached)
	}, p.window)
	fd.SetFilter(storage.NewExtensionFileFilter(pickerExtensions))
	fd.Show()
}

// Attach runs attach for picked and handles an oversize rejection
func (p *ImagePicker) Attach(picked *platform.PickedImage, attach func(model.SelectedImage, string) error, onAttached func(*platform.PickedImage)) {
	err := attach(picked.Image, picked.DataURI)
	if err == nil {
		log.Printf("Image attached: %s", describeImage(&picked.Image))
		if onAttached != nil {
			onAttached(picked)
		}
		return
	}

	var validation *compose.ValidationError
	if !errors.As(err, &validation) || validation.SizeMB == 0 || p.shrinker == nil {
		p.showError(err.Error())
		return
	}

	dialog.ShowConfirm(
		p.localization.GetText(KeyImageTooLarge),
		p.localization.Format(KeyShrinkOffer, validation.Message),
		func(confirmed bool) {
			if confirmed {
				go p.shrink(picked, attach, onAttached)
			}
		},
		p.window,
	)
}

func (p *ImagePicker) shrink(picked *platform.PickedImage, attach func(model.SelectedImage, string) error, onAttached func(*platform.PickedImage)) {
	p.setBusy(true, p.localization.GetText(KeyShrinking))

	ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
	defer cancel()

	shrunk, err := p.shrinker.Shrink(ctx, picked)
	fyne.Do(func() {
		p.setBusy(false, "")
		if err != nil {
			log.Printf("Error shrinking image %s: %v", picked.Image.FileName, err)
			p.showError(p.localization.Format(KeyShrinkFailed, err.Error()))
			return
		}
		p.Attach(shrunk, attach, onAttached)
	})
}

// ShrinkStatus renders a compressor progress report
func ShrinkStatus(l *Localization, progress compress.Progress) string {
	return fmt.Sprintf("%s %d%%%s%s", l.GetText(KeyShrinking), int(progress.Scale*100+0.5),
		MiddleDotSeparator, humanize.IBytes(uint64(progress.Bytes)))
}

func (p *ImagePicker) setBusy(busy bool, status string) {
	if p.onBusy != nil {
		p.onBusy(busy, status)
	}
}

func (p *ImagePicker) showError(message string) {
	dialog.ShowInformation(p.localization.GetText(KeyError), message, p.window)
}

// describeImage renders "photo.jpg · 1.2 MiB · 800×600"
func describeImage(img *model.SelectedImage) string {
	if img == nil {
		return ""
	}
	text := img.FileNameOrDefault() + MiddleDotSeparator + humanize.IBytes(uint64(img.RawByteSize))
	if img.Width > 0 && img.Height > 0 {
		text += MiddleDotSeparator + fmt.Sprintf(DimensionsFormat, img.Width, img.Height)
	}
	return text
}
