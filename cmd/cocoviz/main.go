// Package main provides the entry point for the cocoviz CLI.
//
// cocoviz draws COCO-format object detection annotations onto images:
// bounding boxes, category labels, optional masked variants, and sidecar
// boundary rectangles.
//
// Usage:
//
//	cocoviz render -i images/ -o annotated/
//	cocoviz render -i photo.png -o out.png -c annotations.json
//
// See --help for all available options.
package main

// main is the entry point for cocoviz.
func main() {
	Execute()
}
