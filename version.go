package shelf

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version exposes the version of the library.
var Version = strings.TrimSpace(rawVersion)
