package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/bdf/cockpit/internal/database/repository"
	"github.com/bdf/cockpit/internal/service"
)

// Form rows. Channel and payment are option selectors; the rest are text.
const (
	rowCustomer = iota
	rowChannel
	rowNeighborhood
	rowProducts
	rowFee
	rowPayment
	rowNote
	rowCount
)

var formPayments = []repository.Payment{
	repository.PaymentPix,
	repository.PaymentCash,
	repository.PaymentOnPickup,
	repository.PaymentPaid,
}

// orderForm is the quick-registration modal.
type orderForm struct {
	inputs     map[int]*textinput.Model
	focus      int
	channelIdx int
	paymentIdx int
	errText    string
}

func newOrderForm() *orderForm {
	mk := func(placeholder string, limit int) *textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return &ti
	}
	f := &orderForm{
		inputs: map[int]*textinput.Model{
			rowCustomer:     mk("cliente", 60),
			rowNeighborhood: mk("bairro", 40),
			rowProducts:     mk("0.00", 12),
			rowFee:          mk("auto", 12),
			rowNote:         mk("observação", 120),
		},
	}
	f.inputs[rowCustomer].Focus()
	return f
}

func (f *orderForm) moveFocus(delta int) {
	if ti, ok := f.inputs[f.focus]; ok {
		ti.Blur()
	}
	f.focus = (f.focus + delta + rowCount) % rowCount
	if ti, ok := f.inputs[f.focus]; ok {
		ti.Focus()
	}
}

// cycle steps the selector under focus; no-op on text rows.
func (f *orderForm) cycle(delta int) {
	switch f.focus {
	case rowChannel:
		n := len(repository.Channels())
		f.channelIdx = (f.channelIdx + delta + n) % n
	case rowPayment:
		n := len(formPayments)
		f.paymentIdx = (f.paymentIdx + delta + n) % n
	}
}

func (f *orderForm) channel() repository.Channel {
	return repository.Channels()[f.channelIdx]
}

func (f *orderForm) payment() repository.Payment {
	return formPayments[f.paymentIdx]
}

// submit validates the form and builds the registration input.
func (f *orderForm) submit() (service.RegistrationInput, bool) {
	products, err := parseMoney(f.inputs[rowProducts].Value())
	if err != nil {
		f.errText = "valor de produtos inválido"
		return service.RegistrationInput{}, false
	}
	fee, err := parseMoney(f.inputs[rowFee].Value())
	if err != nil {
		f.errText = "taxa de entrega inválida"
		return service.RegistrationInput{}, false
	}
	f.errText = ""
	return service.RegistrationInput{
		Customer:      f.inputs[rowCustomer].Value(),
		Channel:       f.channel(),
		Neighborhood:  f.inputs[rowNeighborhood].Value(),
		ProductsValue: products,
		DeliveryFee:   fee,
		Payment:       f.payment(),
		Note:          f.inputs[rowNote].Value(),
	}, true
}

// parseMoney accepts "12.50" or "12,50"; empty means zero.
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

func (f *orderForm) view(st styles) string {
	var b strings.Builder
	b.WriteString(st.statusLine.Render("Novo pedido") + "\n\n")

	row := func(idx int, label, value string) {
		marker := "  "
		if idx == f.focus {
			marker = st.statusLine.Render("> ")
		}
		b.WriteString(marker + st.dim.Render(label) + " " + value + "\n")
	}

	row(rowCustomer, "Cliente:   ", f.inputs[rowCustomer].View())
	row(rowChannel, "Canal:     ", "◀ "+string(f.channel())+" ▶")
	row(rowNeighborhood, "Bairro:    ", f.inputs[rowNeighborhood].View())
	row(rowProducts, "Produtos:  ", f.inputs[rowProducts].View())
	row(rowFee, "Taxa:      ", f.inputs[rowFee].View())
	row(rowPayment, "Pagamento: ", "◀ "+string(f.payment())+" ▶")
	row(rowNote, "Obs:       ", f.inputs[rowNote].View())

	if f.errText != "" {
		b.WriteString("\n" + st.alert.Render(f.errText))
	}
	b.WriteString("\n" + st.dim.Render("tab/↓ próximo · ←/→ alterna · enter salva · esc cancela"))
	return st.modal.Render(b.String())
}
