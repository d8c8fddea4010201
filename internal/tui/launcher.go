package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/verletsim/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var presetInfo = map[string]string{
	"single": "one particle",
	"rain":   "a shower from the top band",
	"dam":    "half the box released at once",
	"stress": "above the substep threshold",
	"breeze": "wind, no gravity",
}

type state int

const (
	stateMenu state = iota
	stateConfig
)

// param is one editable field of the chosen preset.
type param struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"particles", 100,
		func(c *config.Config) float64 { return float64(c.InitialParticles) },
		func(c *config.Config, v float64) { c.InitialParticles = max(int(v), 0) }},
	{"width", 50,
		func(c *config.Config) float64 { return c.Width },
		func(c *config.Config, v float64) { c.Width = v }},
	{"height", 50,
		func(c *config.Config) float64 { return c.Height },
		func(c *config.Config, v float64) { c.Height = v }},
	{"workers", 1,
		func(c *config.Config) float64 { return float64(c.Workers) },
		func(c *config.Config, v float64) { c.Workers = max(int(v), 0) }},
	{"seed", 1,
		func(c *config.Config) float64 { return float64(c.Seed) },
		func(c *config.Config, v float64) { c.Seed = int64(v) }},
	{"wind", 1,
		func(c *config.Config) float64 { return boolFloat(c.Wind.Enabled) },
		func(c *config.Config, v float64) { c.Wind.Enabled = v > 0 }},
	{"gravity", 1,
		func(c *config.Config) float64 { return boolFloat(c.Gravity) },
		func(c *config.Config, v float64) { c.Gravity = v > 0 }},
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Launcher picks a preset and lets the user tweak it before the simulation
// starts. Chosen returns the result once the program exits.
type Launcher struct {
	state   state
	cursor  int
	presets []string

	selected    string
	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string
	err         error

	chosen *config.Config
}

func NewLauncher() Launcher {
	return Launcher{
		state:   stateMenu,
		presets: config.ListPresets(),
	}
}

// Pick runs the launcher and returns the chosen config, or nil if the user
// quit without starting.
func Pick() (*config.Config, error) {
	final, err := tea.NewProgram(NewLauncher()).Run()
	if err != nil {
		return nil, err
	}
	return final.(Launcher).Chosen(), nil
}

func (m Launcher) Chosen() *config.Config { return m.chosen }

func (m Launcher) Init() tea.Cmd { return nil }

func (m Launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m Launcher) menuKey(msg tea.KeyMsg) (Launcher, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		cfg, err := config.GetPreset(m.selected)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.cfg = cfg
		m.state = stateConfig
		m.paramCursor = 0
		m.err = nil
	}
	return m, nil
}

func (m Launcher) configKey(msg tea.KeyMsg) (Launcher, tea.Cmd) {
	p := params[m.paramCursor]

	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				p.set(m.cfg, v)
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
		m.err = nil
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(p.get(m.cfg), 'f', -1, 64)
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-p.step)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+p.step)
	case "s":
		if err := m.cfg.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.chosen = m.cfg
		return m, tea.Quit
	}
	return m, nil
}

func (m Launcher) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	}
	return ""
}

func (m Launcher) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("v e r l e t s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")
	return b.String()
}

func (m Launcher) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(presetInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, p := range params {
		val := fmt.Sprintf("%8g", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", p.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", p.name)) + dim.Render(val) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}
