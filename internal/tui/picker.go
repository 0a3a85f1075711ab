package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/bdf/cockpit/internal/database/repository"
)

// courierPicker is the modal used to assign a courier by name. Typing
// fuzzy-ranks the roster so a partial or misspelled name still lands on the
// right person. Inactive couriers are listed last and cannot be assigned, but
// can be reactivated in place.
type courierPicker struct {
	input  textinput.Model
	all    []repository.Courier
	ranked []repository.Courier
	cursor int
}

func newCourierPicker(couriers []repository.Courier) *courierPicker {
	ti := textinput.New()
	ti.Placeholder = "nome do motoboy"
	ti.CharLimit = 40
	ti.Focus()

	p := &courierPicker{input: ti, all: couriers}
	p.rank()
	return p
}

// setRoster replaces the roster (after an activation toggle) and re-ranks,
// keeping the query and cursor.
func (p *courierPicker) setRoster(couriers []repository.Courier) {
	p.all = couriers
	p.rank()
}

// rank orders the roster for the current query: active before inactive, then
// exact prefix matches, then ascending edit distance, ties broken by id.
func (p *courierPicker) rank() {
	query := strings.ToLower(strings.TrimSpace(p.input.Value()))
	ranked := make([]repository.Courier, len(p.all))
	copy(ranked, p.all)

	type scored struct {
		c      repository.Courier
		prefix bool
		dist   int
	}
	ss := make([]scored, 0, len(ranked))
	for _, c := range ranked {
		name := strings.ToLower(c.Name)
		s := scored{c: c}
		if query != "" {
			s.prefix = strings.HasPrefix(name, query)
			s.dist = levenshtein.ComputeDistance(query, name)
		}
		ss = append(ss, s)
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].c.Active != ss[j].c.Active {
			return ss[i].c.Active
		}
		if ss[i].prefix != ss[j].prefix {
			return ss[i].prefix
		}
		if ss[i].dist != ss[j].dist {
			return ss[i].dist < ss[j].dist
		}
		return ss[i].c.ID < ss[j].c.ID
	})
	for i, s := range ss {
		ranked[i] = s.c
	}

	p.ranked = ranked
	if p.cursor >= len(p.ranked) {
		p.cursor = len(p.ranked) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *courierPicker) move(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.ranked) {
		p.cursor = len(p.ranked) - 1
	}
}

// selected returns the courier under the cursor.
func (p *courierPicker) selected() (repository.Courier, bool) {
	if p.cursor < 0 || p.cursor >= len(p.ranked) {
		return repository.Courier{}, false
	}
	return p.ranked[p.cursor], true
}

func (p *courierPicker) view(st styles) string {
	var b strings.Builder
	b.WriteString(st.statusLine.Render("Atribuir motoboy") + "\n")
	b.WriteString(p.input.View() + "\n\n")
	if len(p.ranked) == 0 {
		b.WriteString(st.dim.Render("nenhum motoboy cadastrado"))
	}
	for i, c := range p.ranked {
		line := c.Name
		if c.LoadCount > 0 {
			line += st.dim.Render(" 🛵" + strconv.Itoa(c.LoadCount))
		}
		if !c.Active {
			line = st.dim.Render(line + " (inativo)")
		}
		if i == p.cursor {
			line = st.statusLine.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + st.dim.Render("enter confirma · ctrl+t ativa/desativa · esc cancela"))
	return st.modal.Render(b.String())
}
