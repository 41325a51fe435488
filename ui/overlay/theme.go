package overlay

import "github.com/charmbracelet/lipgloss"

// Rosé Pine Moon palette, mirroring ui/theme.go.
// https://rosepinetheme.com/palette/
var (
	colorBase   = lipgloss.Color("#232136")
	colorMuted  = lipgloss.Color("#6e6a86")
	colorSubtle = lipgloss.Color("#908caa")
	colorText   = lipgloss.Color("#e0def4")

	colorLove = lipgloss.Color("#eb6f92") // error
	colorFoam = lipgloss.Color("#9ccfd8") // success
	colorIris = lipgloss.Color("#c4a7e7") // highlight, primary
)
