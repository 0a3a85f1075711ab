package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bdf/cockpit/internal/database/repository"
	"github.com/bdf/cockpit/internal/engine"
)

// renderCards draws the visible window of order cards. topIndex is adjusted
// by the caller to keep the selection on screen.
func (a *App) renderCards(width, height int) string {
	seq := a.engine.Nav().Visible()
	if len(seq) == 0 {
		return a.styles.dim.Render("Nenhum pedido ativo. Pressione 'n' para registrar.")
	}

	bodyLines := zoomPreset(a.cfg.UI.Zoom)
	cardHeight := bodyLines + 3 // title row + borders
	perScreen := height / cardHeight
	if perScreen < 1 {
		perScreen = 1
	}

	selIdx := a.engine.Nav().Index()
	if selIdx >= 0 {
		if selIdx < a.topIndex {
			a.topIndex = selIdx
		}
		if selIdx >= a.topIndex+perScreen {
			a.topIndex = selIdx - perScreen + 1
		}
	}
	if a.topIndex > len(seq)-perScreen {
		a.topIndex = len(seq) - perScreen
	}
	if a.topIndex < 0 {
		a.topIndex = 0
	}

	end := a.topIndex + perScreen
	if end > len(seq) {
		end = len(seq)
	}

	var cards []string
	for i := a.topIndex; i < end; i++ {
		id := seq[i]
		o, ok := a.engine.Order(id)
		if !ok {
			continue
		}
		cards = append(cards, a.renderCard(o, a.engine.Alerts(id), i == selIdx, width, bodyLines))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (a *App) renderCard(o repository.Order, alerts engine.AlertFlags, focused bool, width, bodyLines int) string {
	style := a.styles.card
	if focused {
		style = a.styles.cardFocus
	}

	chStyle := lipgloss.NewStyle().Foreground(channelColor(o.Channel)).Bold(true)
	stStyle := lipgloss.NewStyle().Foreground(statusColor(o.Status)).Bold(true)

	title := fmt.Sprintf("#%d %s  %s  %s",
		o.ID, o.Customer, chStyle.Render(string(o.Channel)), stStyle.Render(string(o.Status)))
	if badges := alertBadges(alerts, a.styles); badges != "" {
		title += "  " + badges
	}

	lines := []string{title}
	if bodyLines >= 1 {
		money := fmt.Sprintf("R$ %.2f  (produtos %.2f + entrega %.2f)", o.TotalValue, o.ProductsValue, o.DeliveryFee)
		lines = append(lines, a.styles.dim.Render(money))
	}
	if bodyLines >= 2 {
		lines = append(lines, a.styles.dim.Render(fmt.Sprintf("%s  %s  %s",
			string(o.Payment), a.courierName(o.CourierID), o.CreatedAt.Format("15:04"))))
	}
	if bodyLines >= 3 {
		note := o.Note
		if note == "" {
			note = "—"
		}
		lines = append(lines, "Obs: "+note)
	}
	if bodyLines >= 4 {
		lines = append(lines, a.styles.dim.Render("Bairro: "+a.neighborhoodName(o.NeighborhoodID)))
	}

	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func alertBadges(f engine.AlertFlags, st styles) string {
	var b []string
	if f.PixPending {
		b = append(b, st.alert.Render("PIX PENDENTE"))
	}
	if f.PayOnPickup {
		b = append(b, st.alert.Render("COBRAR NA RETIRADA"))
	}
	if f.Late {
		b = append(b, st.alert.Render("ATRASADO"))
	}
	if f.HasNote {
		b = append(b, "📝")
	}
	return strings.Join(b, " ")
}

func (a *App) courierName(id *int64) string {
	if id == nil {
		return "sem motoboy"
	}
	for _, c := range a.couriers {
		if c.ID == *id {
			return "🛵 " + c.Name
		}
	}
	return fmt.Sprintf("motoboy #%d", *id)
}

func (a *App) neighborhoodName(id *int64) string {
	if id == nil {
		return "—"
	}
	for _, n := range a.hoods {
		if n.ID == *id {
			return fmt.Sprintf("%s (taxa %.2f)", n.Name, n.Fee)
		}
	}
	return fmt.Sprintf("#%d", *id)
}
