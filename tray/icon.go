package tray

import (
	_ "embed"
)

// Embedded SVG icon data
//
//go:embed icon.svg
var iconSVG []byte
