// Package output provides the output destination for filtered files.
//
// [FileWriter] stages everything in a temporary file beside the target and
// renames it into place on [FileWriter.Commit]. [FileWriter.Abort] discards
// the staged file, leaving any pre-existing target unchanged. Symlinks are
// resolved before staging. FIFOs and devices are opened and written in place.
//
// A replaced file keeps its permissions. A new file is created with 0666
// minus the process umask unless [WithPermissions] is given.
package output
