package imaging

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// Orientation returns the EXIF orientation of the image file at path.
// ok is false when the file carries no EXIF block or no orientation tag.
//
// Orientation 1 is "upright as stored". Any other value means a viewer that
// honors EXIF will rotate or mirror the pixels, while annotation boxes stay
// in stored-pixel coordinates; callers use this to warn about the mismatch.
func Orientation(path string) (orientation uint16, ok bool) {
	rawExif, err := exif.SearchFileAndExtractExif(path)
	if err != nil {
		return 0, false
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 0, false
	}

	for _, entry := range entries {
		if entry.TagName != "Orientation" {
			continue
		}
		if values, isShort := entry.Value.([]uint16); isShort && len(values) > 0 {
			return values[0], true
		}
	}
	return 0, false
}
