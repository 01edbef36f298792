package display

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the display uses, bound to one renderer
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	HandInfo  lipgloss.Style
	Win       lipgloss.Style
	Loss      lipgloss.Style
	Push      lipgloss.Style
	Info      lipgloss.Style

	// Strategy grid cells
	Stand  lipgloss.Style
	Hit    lipgloss.Style
	Double lipgloss.Style
	Split  lipgloss.Style
	Empty  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	cell := r.NewStyle().Width(3).Align(lipgloss.Center)
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Loss: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Push: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		Stand:  cell.Foreground(lipgloss.Color("#FFEAA7")),
		Hit:    cell.Foreground(lipgloss.Color("#FAFAFA")),
		Double: cell.Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Split:  cell.Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		Empty:  cell.Foreground(lipgloss.Color("#626262")),
	}
}
