package tinifycli

import (
	"path/filepath"
	"strings"
)

// OutputPrefix is prepended to an image name to form the name of its compressed copy.
const OutputPrefix = "compressed_"

// ImageExtensions lists the file extensions, without the dot, that are sent for compression.
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp", "bmp"}

// IsImageName reports whether name has one of the ImageExtensions.
// The comparison is case-insensitive. Names without an extension never match.
func IsImageName(name string) bool {
	ext := filepath.Ext(name)
	// a dotfile such as ".png" has no extension
	if len(ext) < 2 || ext == name {
		return false
	}
	ext = ext[1:]

	for _, e := range ImageExtensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}

	return false
}

// OutputName returns the file name the compressed copy of name is written to.
func OutputName(name string) string {
	return OutputPrefix + filepath.Base(name)
}

// Ratio returns 100 * compressed / original. A zero original size yields 0.
func Ratio(compressed, original int64) float64 {
	if original <= 0 {
		return 0
	}
	return 100 * float64(compressed) / float64(original)
}
