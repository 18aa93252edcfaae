package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// imageExtensions lists the file suffixes that identify renderable images.
// Matching is case-sensitive; an uppercase suffix is not an image.
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// Subdirectories returns root and every directory below it, sorted
// lexicographically. The returned paths are absolute when root is.
func Subdirectories(root string) ([]string, error) {
	var dirs []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

// DiscoverImages lists the image files directly inside dir, sorted by
// name. It does not descend into subdirectories.
func DiscoverImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, ext := range imageExtensions {
			if strings.HasSuffix(name, ext) {
				images = append(images, filepath.Join(dir, name))
				break
			}
		}
	}
	sort.Strings(images)
	return images, nil
}
