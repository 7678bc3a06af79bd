// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeImageFile adapts a bytes.Reader to multipart.File for validation tests.
type fakeImageFile struct {
	*bytes.Reader
	failSeek bool
}

func (f *fakeImageFile) Close() error { return nil }

func (f *fakeImageFile) Seek(offset int64, whence int) (int64, error) {
	if f.failSeek {
		return 0, errors.New("seek failed")
	}
	return f.Reader.Seek(offset, whence)
}

func pngFile(failSeek bool) *fakeImageFile {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return &fakeImageFile{Reader: bytes.NewReader(png), failSeek: failSeek}
}

func TestProductImageKeyLayout(t *testing.T) {
	key := ProductImageKey("Air Zoom 2.0", "Ocean Blue", "side view.webp")

	// shoes/{name}/{color}/{timestamp}_{filename}
	pattern := regexp.MustCompile(`^shoes/Air_Zoom_2_0/Ocean_Blue/\d+_side_view\.webp$`)
	assert.Regexp(t, pattern, key)
}

func TestProductImageKeyDefaultColor(t *testing.T) {
	key := ProductImageKey("Runner", "   ", "a.png")
	assert.Regexp(t, regexp.MustCompile(`^shoes/Runner/default/\d+_a\.png$`), key)
}

func TestSanitizeSegmentStripsEverythingButAlnum(t *testing.T) {
	assert.Equal(t, "Nexura_Pro_X", sanitizeSegment("Nexura Pro/X"))
	assert.Equal(t, "caf_", sanitizeSegment("café"))
}

func TestSanitizeFilenameKeepsExtension(t *testing.T) {
	assert.Equal(t, "top_down.jpeg", sanitizeFilename("top  down.jpeg"))
	assert.Equal(t, "plain.png", sanitizeFilename("plain.png"))
}

func TestValidateImageRewindsForUpload(t *testing.T) {
	svc := &StorageService{}
	file := pngFile(false)

	assert.NoError(t, svc.ValidateImage(file))

	// The upload that follows must see the file from the start.
	rest, err := io.ReadAll(file)
	assert.NoError(t, err)
	assert.Len(t, rest, 8)
}

func TestValidateImageRejectsNonImage(t *testing.T) {
	svc := &StorageService{}
	file := &fakeImageFile{Reader: bytes.NewReader([]byte("%PDF-1.7 not a shoe"))}

	assert.ErrorContains(t, svc.ValidateImage(file), "invalid image")
}

func TestValidateImageSurfacesSeekFailure(t *testing.T) {
	svc := &StorageService{}
	file := pngFile(true)

	assert.ErrorContains(t, svc.ValidateImage(file), "failed to reset file")
}

func TestIsValidImageType(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	webp := append([]byte("RIFF"), append(make([]byte, 4), []byte("WEBP")...)...)

	assert.True(t, isValidImageType(jpeg))
	assert.True(t, isValidImageType(png))
	assert.True(t, isValidImageType([]byte("GIF89a......")))
	assert.True(t, isValidImageType(webp))
	assert.False(t, isValidImageType([]byte("%PDF-1.7")))
	assert.False(t, isValidImageType(nil))
}
