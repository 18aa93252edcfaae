// Package coco provides the data model for COCO-style annotation metadata.
//
// A metadata file is decoded once into a Dataset with explicit
// present-or-absent semantics: a nil slice means the key was missing from
// the document, while an empty non-nil slice means the key was present but
// empty. All subsequent accesses work on the decoded value instead of
// re-checking a dynamic document at each use site.
//
// The referential relations in a dataset are soft: annotations may point at
// image ids that do not exist, and category ids may have no matching
// categories entry. Lookups tolerate both.
package coco
