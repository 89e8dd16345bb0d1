package imageutil

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pic.png")
	img := imaging.New(w, h, image.White.C)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestFitProfilePictureDownscalesLargeImages(t *testing.T) {
	path := writeTestImage(t, 900, 600)

	require.NoError(t, FitProfilePicture(path))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), MaxProfileDimension)
	assert.LessOrEqual(t, img.Bounds().Dy(), MaxProfileDimension)
	// Aspect ratio preserved: 900x600 fits to 300x200
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestFitProfilePictureLeavesSmallImagesAlone(t *testing.T) {
	path := writeTestImage(t, 120, 80)

	require.NoError(t, FitProfilePicture(path))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestFitProfilePictureMissingFile(t *testing.T) {
	err := FitProfilePicture(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
