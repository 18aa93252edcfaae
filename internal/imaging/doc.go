// Package imaging handles raster I/O for the renderer.
//
// It decodes PNG, JPEG, and GIF sources, flattens images that carry a
// transparency channel onto an opaque representation before any drawing
// happens, and saves results with the output format inferred from the
// destination extension. It also probes JPEG sources for an EXIF
// orientation tag, since annotation boxes are expressed in stored-pixel
// coordinates and auto-rotating viewers will display them misaligned.
package imaging
