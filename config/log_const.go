package config

import "github.com/gookit/color"

// Prefix styles for component loggers.
var (
	ColorGreen   = color.Style{color.FgGreen}
	ColorBlue    = color.Style{color.FgBlue}
	ColorMagenta = color.Style{color.FgMagenta}
	ColorCyan    = color.Style{color.FgCyan}
	ColorYellow  = color.Style{color.FgYellow}
)
