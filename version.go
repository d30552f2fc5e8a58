package rpda

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of the library and the rpda binary.
var Version = strings.TrimSpace(version)
