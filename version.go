package worldforge

import _ "embed"

// Version is the release version, read from the VERSION file.
// Callers trim the trailing newline.
//
//go:embed VERSION
var Version string
