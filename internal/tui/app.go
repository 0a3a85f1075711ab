package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bdf/cockpit/internal/config"
	"github.com/bdf/cockpit/internal/database/repository"
	"github.com/bdf/cockpit/internal/engine"
	"github.com/bdf/cockpit/internal/service"
)

// tickInterval drives the background alert recomputation.
const tickInterval = 30 * time.Second

// Repos gives the presentation layer read access to reference data.
type Repos struct {
	Couriers      *repository.CourierRepo
	Neighborhoods *repository.NeighborhoodRepo
}

// Services are the flows the TUI drives outside the orchestrator.
type Services struct {
	Registration *service.RegistrationService
}

// App is the cockpit's bubbletea model. Every intent is handed to the
// orchestrator synchronously inside Update, so intents are processed one at a
// time in arrival order.
type App struct {
	ctx      context.Context
	engine   *engine.Cockpit
	repos    Repos
	services Services
	cfg      config.Config
	themes   []config.Theme
	log      *slog.Logger

	styles   styles
	keys     keyMap
	panelKey panelKeyMap

	couriers []repository.Courier
	hoods    []repository.Neighborhood

	width    int
	height   int
	topIndex int
	status   string

	form      *orderForm
	picker    *courierPicker
	noteInput *textinput.Model
}

func New(ctx context.Context, eng *engine.Cockpit, repos Repos, services Services, cfg config.Config, themes []config.Theme, log *slog.Logger) *App {
	return &App{
		ctx:      ctx,
		engine:   eng,
		repos:    repos,
		services: services,
		cfg:      cfg,
		themes:   themes,
		log:      log,
		styles:   newStyles(config.FindTheme(themes, cfg.UI.Theme)),
		keys:     newKeyMap(),
		panelKey: newPanelKeyMap(),
	}
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type tickMsg time.Time

type referenceMsg struct {
	couriers []repository.Courier
	hoods    []repository.Neighborhood
	err      error
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) loadReference() tea.Cmd {
	return func() tea.Msg {
		couriers, err := a.repos.Couriers.List(a.ctx)
		if err != nil {
			return referenceMsg{err: err}
		}
		hoods, err := a.repos.Neighborhoods.List(a.ctx)
		if err != nil {
			return referenceMsg{err: err}
		}
		return referenceMsg{couriers: couriers, hoods: hoods}
	}
}

func (a *App) Init() tea.Cmd {
	if _, err := a.engine.Refresh(a.ctx); err != nil {
		a.status = friendlyError(err)
	}
	return tea.Batch(a.loadReference(), tick())
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		if _, err := a.engine.HandleIntent(a.ctx, engine.IntentTick); err != nil {
			a.status = friendlyError(err)
		}
		return a, tick()

	case referenceMsg:
		if msg.err != nil {
			a.status = friendlyError(msg.err)
			return a, nil
		}
		a.couriers = msg.couriers
		a.hoods = msg.hoods
		return a, nil

	case tea.KeyMsg:
		switch {
		case a.form != nil:
			return a.handleFormKey(msg)
		case a.picker != nil:
			return a.handlePickerKey(msg)
		case a.noteInput != nil:
			return a.handleNoteKey(msg)
		default:
			return a.handleKey(msg)
		}
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		a.dispatch(engine.IntentUp)
	case key.Matches(msg, a.keys.Down):
		a.dispatch(engine.IntentDown)
	case key.Matches(msg, a.keys.Enter):
		a.dispatch(engine.IntentEnter)
	case key.Matches(msg, a.keys.Route):
		a.dispatch(engine.IntentRouteToggle)
		if a.engine.RouteModeActive() {
			a.status = "MODO ROTA armado: enter despacha o pedido selecionado"
		}
	case key.Matches(msg, a.keys.Dismiss):
		a.dispatch(engine.IntentDismiss)

	case key.Matches(msg, a.keys.NewOrder):
		a.form = newOrderForm()
	case key.Matches(msg, a.keys.Theme):
		a.cycleTheme()
	case key.Matches(msg, a.keys.Zoom):
		a.cycleZoom()

	default:
		if a.engine.PanelState().IsOpen() {
			return a.handlePanelKey(msg)
		}
	}
	return a, nil
}

// dispatch routes one raw intent through the orchestrator and surfaces the
// outcome on the status line.
func (a *App) dispatch(in engine.Intent) {
	if _, err := a.engine.HandleIntent(a.ctx, in); err != nil {
		a.status = friendlyError(err)
		return
	}
	a.status = ""
}

func (a *App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, a.panelKey.ConfirmPix):
		_, err = a.engine.ConfirmPix(a.ctx)
		a.setActionStatus("PIX confirmado", err)
	case key.Matches(msg, a.panelKey.Receive):
		_, err = a.engine.ReceivePayment(a.ctx)
		a.setActionStatus("Pagamento recebido", err)
	case key.Matches(msg, a.panelKey.Courier):
		a.picker = newCourierPicker(a.couriers)
	case key.Matches(msg, a.panelKey.Note):
		a.openNoteInput()
	case key.Matches(msg, a.panelKey.Advance):
		_, err = a.engine.AdvanceStatus(a.ctx)
		a.setActionStatus("Status avançado", err)
	case key.Matches(msg, a.panelKey.Cancel):
		_, err = a.engine.CancelOrder(a.ctx)
		a.setActionStatus("Pedido cancelado", err)
	}
	return a, nil
}

func (a *App) setActionStatus(ok string, err error) {
	if err != nil {
		a.status = friendlyError(err)
		return
	}
	a.status = ok
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.form = nil
		return a, nil
	case "tab", "down":
		a.form.moveFocus(1)
		return a, nil
	case "shift+tab", "up":
		a.form.moveFocus(-1)
		return a, nil
	case "left":
		if a.form.focus == rowChannel || a.form.focus == rowPayment {
			a.form.cycle(-1)
			return a, nil
		}
	case "right":
		if a.form.focus == rowChannel || a.form.focus == rowPayment {
			a.form.cycle(1)
			return a, nil
		}
	case "enter":
		in, ok := a.form.submit()
		if !ok {
			return a, nil
		}
		id, err := a.services.Registration.Create(a.ctx, in)
		if err != nil {
			a.form.errText = friendlyError(err)
			return a, nil
		}
		a.form = nil
		if _, err := a.engine.Refresh(a.ctx); err != nil {
			a.status = friendlyError(err)
			return a, nil
		}
		a.engine.Nav().Select(id)
		a.status = fmt.Sprintf("Pedido #%d registrado", id)
		return a, nil
	}
	if ti, ok := a.form.inputs[a.form.focus]; ok {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.picker = nil
		return a, nil
	case "up":
		a.picker.move(-1)
		return a, nil
	case "down":
		a.picker.move(1)
		return a, nil
	case "enter":
		c, ok := a.picker.selected()
		if !ok {
			a.picker = nil
			return a, nil
		}
		if !c.Active {
			a.status = "Motoboy " + c.Name + " está inativo"
			return a, nil
		}
		a.picker = nil
		_, err := a.engine.AssignCourier(a.ctx, c.ID)
		a.setActionStatus("Motoboy "+c.Name+" atribuído", err)
		return a, nil
	case "ctrl+t":
		c, ok := a.picker.selected()
		if !ok {
			return a, nil
		}
		if err := a.repos.Couriers.SetActive(a.ctx, c.ID, !c.Active); err != nil {
			a.status = friendlyError(err)
			return a, nil
		}
		couriers, err := a.repos.Couriers.List(a.ctx)
		if err != nil {
			a.status = friendlyError(err)
			return a, nil
		}
		a.couriers = couriers
		a.picker.setRoster(couriers)
		return a, nil
	}
	var cmd tea.Cmd
	a.picker.input, cmd = a.picker.input.Update(msg)
	a.picker.rank()
	return a, cmd
}

func (a *App) openNoteInput() {
	ti := textinput.New()
	ti.Placeholder = "observação"
	ti.CharLimit = 120
	if id, _, open := a.engine.PanelState().OpenFor(); open {
		if o, ok := a.engine.Order(id); ok {
			ti.SetValue(o.Note)
		}
	}
	ti.Focus()
	a.noteInput = &ti
}

func (a *App) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.noteInput = nil
		return a, nil
	case "enter":
		text := a.noteInput.Value()
		a.noteInput = nil
		_, err := a.engine.SaveNote(a.ctx, text)
		a.setActionStatus("Observação salva", err)
		return a, nil
	}
	var cmd tea.Cmd
	*a.noteInput, cmd = a.noteInput.Update(msg)
	return a, cmd
}

// ---------------------------------------------------------------------------
// Theme and zoom cycling; both persist immediately.
// ---------------------------------------------------------------------------

func (a *App) cycleTheme() {
	if len(a.themes) == 0 {
		return
	}
	idx := 0
	for i, t := range a.themes {
		if strings.EqualFold(t.Name, a.cfg.UI.Theme) {
			idx = (i + 1) % len(a.themes)
			break
		}
	}
	a.cfg.UI.Theme = a.themes[idx].Name
	a.styles = newStyles(a.themes[idx])
	if err := config.Save(a.cfg); err != nil {
		a.log.Warn("persist theme", "error", err)
	}
	a.status = "Tema: " + a.cfg.UI.Theme
}

func (a *App) cycleZoom() {
	names := zoomNames()
	idx := 0
	for i, n := range names {
		if n == a.cfg.UI.Zoom {
			idx = (i + 1) % len(names)
			break
		}
	}
	a.cfg.UI.Zoom = names[idx]
	if err := config.Save(a.cfg); err != nil {
		a.log.Warn("persist zoom", "error", err)
	}
	a.status = "Zoom: " + a.cfg.UI.Zoom
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	if a.width == 0 {
		return "carregando..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	bodyHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case a.form != nil:
		body = a.form.view(a.styles)
	case a.picker != nil:
		body = a.picker.view(a.styles)
	case a.noteInput != nil:
		body = a.styles.modal.Render("Observação\n" + a.noteInput.View() + "\n\n" +
			a.styles.dim.Render("enter salva · esc cancela"))
	case a.engine.PanelState().IsOpen():
		left := a.renderCards(a.width*2/3, bodyHeight)
		right := a.renderPanel(a.width - a.width*2/3 - 2)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	default:
		body = a.renderCards(a.width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *App) renderHeader() string {
	title := a.styles.header.Render(" COCKPIT · " + a.cfg.UI.Operator + " ")
	parts := []string{title}
	if a.engine.RouteModeActive() {
		parts = append(parts, a.styles.routeBanner.Render(" MODO ROTA "))
	}
	parts = append(parts, a.styles.dim.Render(fmt.Sprintf(" %d pedidos ", len(a.engine.Nav().Visible()))))
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (a *App) renderPanel(width int) string {
	id, mode, open := a.engine.PanelState().OpenFor()
	if !open {
		return ""
	}
	o, ok := a.engine.Order(id)
	if !ok {
		return ""
	}
	alerts := a.engine.Alerts(id)

	var b strings.Builder
	b.WriteString(a.styles.statusLine.Render(fmt.Sprintf("Pedido #%d · %s", o.ID, mode)) + "\n\n")
	b.WriteString(o.Customer + "\n")
	b.WriteString(string(o.Channel) + " · " + string(o.Status) + "\n")
	b.WriteString(fmt.Sprintf("Total R$ %.2f · %s\n", o.TotalValue, string(o.Payment)))
	b.WriteString(a.courierName(o.CourierID) + "\n")
	b.WriteString("Bairro: " + a.neighborhoodName(o.NeighborhoodID) + "\n")
	if o.Note != "" {
		b.WriteString("Obs: " + o.Note + "\n")
	}
	if badges := alertBadges(alerts, a.styles); badges != "" {
		b.WriteString("\n" + badges + "\n")
	}

	b.WriteString("\n")
	for _, bind := range a.panelKey.shortHelp() {
		h := bind.Help()
		b.WriteString(a.styles.dim.Render(fmt.Sprintf("%-4s %s", h.Key, h.Desc)) + "\n")
	}
	return a.styles.panel.Width(width).Render(b.String())
}

func (a *App) renderFooter() string {
	var parts []string
	for _, bind := range a.keys.shortHelp() {
		h := bind.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	help := a.styles.footer.Render(strings.Join(parts, " · "))
	if a.status == "" {
		return help
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.styles.statusLine.Render(a.status), help)
}

// friendlyError turns engine errors into operator-readable status text.
func friendlyError(err error) string {
	var inv *engine.InvalidStateError
	var store *engine.StoreError
	switch {
	case errors.Is(err, engine.ErrChannelLocked):
		return "Pedido BALCÃO: retirada no balcão, sem motoboy"
	case errors.Is(err, engine.ErrNoCourierAvailable):
		return "Nenhum motoboy ativo disponível"
	case errors.As(err, &inv):
		return "Ação inválida para o estado atual do pedido"
	case errors.As(err, &store):
		return "Falha ao salvar; nada foi alterado (" + store.Err.Error() + ")"
	default:
		return err.Error()
	}
}
