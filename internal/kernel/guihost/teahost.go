package guihost

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tickMsg is sent on every period; its arrival is what drives the REPL
// callback the way the teacher's reference toolkit pumps its own native
// event loop (spec.md §4.7's "real foreign event loop" case).
type tickMsg time.Time

// TeaGuiHost pumps a tea.Program as the "foreign GUI toolkit" event loop
// described in spec.md §4.7, ticking the REPL callback via tea.Tick and
// showing kernel status with a bubbles spinner while busy.
type TeaGuiHost struct {
	program *tea.Program
	model   *hostModel
}

type hostModel struct {
	period time.Duration
	tick   func() (keepRunning bool)
	spin   spinner.Model
	busy   bool
	done   bool
}

// NewTeaGuiHost builds a GuiHost backed by a bubbletea program. The tick
// callback is supplied at Run time, matching the Channels/GuiHost split:
// the host only knows how to pump, not what it is pumping.
func NewTeaGuiHost() *TeaGuiHost {
	return &TeaGuiHost{}
}

func (h *TeaGuiHost) Run(period time.Duration, tick func() (keepRunning bool)) error {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	h.model = &hostModel{period: period, tick: tick, spin: sp}
	h.program = tea.NewProgram(h.model)
	_, err := h.program.Run()
	return err
}

func (h *TeaGuiHost) Quit() {
	if h.program != nil {
		h.program.Quit()
	}
}

func (m *hostModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, scheduleTick(m.period))
}

func (m *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.tick() {
			m.done = true
			return m, tea.Quit
		}
		return m, scheduleTick(m.period)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *hostModel) View() string {
	if m.done {
		return ""
	}
	return m.spin.View() + " kestrel\n"
}

func scheduleTick(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg { return tickMsg(t) })
}
