package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bdf/cockpit/internal/config"
	"github.com/bdf/cockpit/internal/database/repository"
)

// styles carries every lipgloss style derived from the active theme. Rebuilt
// whenever the operator cycles themes.
type styles struct {
	theme config.Theme

	header      lipgloss.Style
	routeBanner lipgloss.Style
	card        lipgloss.Style
	cardFocus   lipgloss.Style
	panel       lipgloss.Style
	modal       lipgloss.Style
	footer      lipgloss.Style
	statusLine  lipgloss.Style
	alert       lipgloss.Style
	dim         lipgloss.Style
}

func newStyles(t config.Theme) styles {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	return styles{
		theme:  t,
		header: base.Bold(true).Background(lipgloss.Color(t.Panel)).Padding(0, 1),
		routeBanner: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#1b1b1b")).
			Background(lipgloss.Color("#ff8c00")).Padding(0, 1),
		card: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1),
		cardFocus: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Background(lipgloss.Color(t.Card)).
			Padding(0, 1),
		panel: base.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 2),
		modal: base.
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 2),
		footer:     lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		statusLine: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		alert:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4d4d")).Bold(true),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	}
}

// statusColor mirrors the classic cockpit palette per lifecycle state.
func statusColor(s repository.Status) lipgloss.Color {
	switch s {
	case repository.StatusReceived:
		return "#7cb342"
	case repository.StatusPreparing:
		return "#fbc02d"
	case repository.StatusReadyForDispatch:
		return "#ffa726"
	case repository.StatusEnRoute:
		return "#29b6f6"
	case repository.StatusDelivered:
		return "#66bb6a"
	case repository.StatusCancelled:
		return "#ef5350"
	default:
		return "#cccccc"
	}
}

func channelColor(c repository.Channel) lipgloss.Color {
	switch c {
	case repository.ChannelIFood:
		return "#ff5722"
	case repository.ChannelWhatsApp:
		return "#43a047"
	case repository.ChannelBalcao:
		return "#8e24aa"
	default:
		return "#607d8b"
	}
}

// zoomPreset maps a card-density name to the number of body lines per card.
func zoomPreset(name string) int {
	switch name {
	case "GIGANTE":
		return 4
	case "GRANDE":
		return 3
	case "PEQUENO":
		return 1
	default: // NORMAL
		return 2
	}
}

// zoomNames lists the presets in cycling order.
func zoomNames() []string {
	return []string{"GIGANTE", "GRANDE", "NORMAL", "PEQUENO"}
}
