// Package render draws COCO annotation boxes, category labels, and
// workspace boundaries onto source images.
//
// The renderer works on one image at a time: it resolves the image's id in
// the dataset by bare filename, draws every matching annotation in document
// order, optionally parses a sidecar boundary file next to the source, and
// persists the result. When a mask margin is configured it additionally
// emits a masked sibling where everything outside the margin-expanded
// annotation regions is blacked out.
//
// Failure handling follows the run's tolerance policy: in strict mode
// lookup and I/O failures propagate to the caller, in lenient mode they
// downgrade to a skipped image plus a diagnostic. A malformed annotation or
// boundary file is never fatal in either mode; it only skips the offending
// sub-item.
package render
