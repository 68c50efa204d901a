// Package fileutil holds the permission modes used for generated output.
package fileutil

import "os"

// ReadableByAll is the mode for generated files, which build tools and
// other users need to read.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the mode for directories created to hold generated files.
const DirReadableByAll os.FileMode = 0o755
