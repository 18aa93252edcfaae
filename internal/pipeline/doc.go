// Package pipeline orchestrates bulk rendering runs over a directory tree.
//
// A run enumerates the input root and its subdirectories, mirrors each
// directory under the output root, and fans the images of every directory
// out across a fixed set of workers. Each worker owns a contiguous shard
// of the directory's image list, so results keep a stable order without
// locking.
//
// Failure policy follows the renderer: in lenient mode a broken image is
// recorded and the run continues, in strict mode the first failure stops
// the run with an error.
package pipeline
