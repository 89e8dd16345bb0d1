package imageutil

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// MaxProfileDimension bounds both sides of a stored profile picture.
const MaxProfileDimension = 300

// FitProfilePicture downscales the image at path in place so both dimensions
// fit within MaxProfileDimension, preserving aspect ratio. Images already
// within bounds are left untouched. Callers treat failure as non-fatal: a
// missing or unreadable file must never fail the save that triggered it.
func FitProfilePicture(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open image %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= MaxProfileDimension && bounds.Dy() <= MaxProfileDimension {
		return nil
	}

	resized := imaging.Fit(img, MaxProfileDimension, MaxProfileDimension, imaging.Lanczos)
	if err := imaging.Save(resized, path); err != nil {
		return fmt.Errorf("save resized image %s: %w", path, err)
	}
	return nil
}
