package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/ui/components"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗  ██████╗██╗   ██╗███████╗███████╗██╗      ██████╗ ██╗    ██╗
 ██╔════╝██╔═══██╗██╔════╝██║   ██║██╔════╝██╔════╝██║     ██╔═══██╗██║    ██║
 █████╗  ██║   ██║██║     ██║   ██║███████╗█████╗  ██║     ██║   ██║██║ █╗ ██║
 ██╔══╝  ██║   ██║██║     ██║   ██║╚════██║██╔══╝  ██║     ██║   ██║██║███╗██║
 ██║     ╚██████╔╝╚██████╗╚██████╔╝███████║██║     ███████╗╚██████╔╝╚███╔███╔╝
 ╚═╝      ╚═════╝  ╚═════╝ ╚═════╝ ╚══════╝╚═╝     ╚══════╝ ╚═════╝  ╚══╝╚══╝`

const bannerCompact = "F O C U S F L O W"

// RenderBanner returns the FOCUSFLOW banner as an indigo-to-pink gradient.
// Uses a compact fallback for terminals narrower than 80 columns.
func RenderBanner(width int) string {
	if width < 80 {
		return lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Render(bannerCompact)
	}
	return components.GradientText(bannerArt, theme.SessionFrom, theme.SessionTo)
}
