package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/goldenkube/kubeprep/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗██╗   ██╗██████╗ ███████╗██████╗ ██████╗ ███████╗██████╗
 ██║ ██╔╝██║   ██║██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝██╔══██╗
 █████╔╝ ██║   ██║██████╔╝█████╗  ██████╔╝██████╔╝█████╗  ██████╔╝
 ██╔═██╗ ██║   ██║██╔══██╗██╔══╝  ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ██║  ██╗╚██████╔╝██████╔╝███████╗██║     ██║  ██║███████╗██║
 ╚═╝  ╚═╝ ╚═════╝ ╚═════╝ ╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "K U B E P R E P"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 68

// RenderBanner returns the KUBEPREP banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
