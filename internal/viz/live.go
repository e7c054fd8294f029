package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
)

const (
	graphWidth      = 64
	graphHeight     = 10
	historyCapacity = 600
)

type TickMsg time.Time

// Model steps a simulator from the event loop and renders the watched
// variables as a scrolling history plus a depth profile.
type Model struct {
	sim     *engine.Simulator
	steps   int
	watch   []string
	fields  []*field.Field
	history map[string][]float64

	step     int
	selected int
	profile  *field.Field
	running  bool
	err      error
}

// NewModel prepares a live view over an initialized simulator. watch
// names must resolve in the simulator's container; the first Column
// shaped one is also shown as a depth profile.
func NewModel(sim *engine.Simulator, steps int, watch []string) (Model, error) {
	m := Model{
		sim:     sim,
		steps:   steps,
		watch:   watch,
		history: make(map[string][]float64, len(watch)),
		running: true,
	}
	for _, name := range watch {
		f, err := sim.State().Resolve(name)
		if err != nil {
			return Model{}, err
		}
		m.fields = append(m.fields, f)
		if m.profile == nil && f.Shape == field.Column {
			m.profile = f
		}
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			m.advance(1)
		case "tab":
			m.selected = (m.selected + 1) % len(m.watch)
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil && m.step < m.steps {
			// A few steps per frame keeps long runs watchable.
			m.advance(4)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	for i := 0; i < n && m.step < m.steps; i++ {
		if err := m.sim.Step(); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.step++
		for j, name := range m.watch {
			h := append(m.history[name], m.fields[j].Mean())
			if len(h) > historyCapacity {
				h = h[1:]
			}
			m.history[name] = h
		}
	}
	if m.step >= m.steps {
		m.running = false
	}
}

func (m Model) View() string {
	var b strings.Builder

	clock := m.sim.Clock()
	status := statusPaused.Render("PAUSED")
	if m.err != nil {
		status = statusPaused.Render("ERROR")
	} else if m.step >= m.steps {
		status = statusDone.Render("DONE")
	} else if m.running {
		status = statusRunning.Render("RUNNING")
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("terrago live  %s  %s",
		clock.Now().Format("2006-01-02 15:04"), status)))
	b.WriteString("\n")
	b.WriteString(ProgressBar(float64(m.step)/float64(m.steps), graphWidth))
	b.WriteString(fmt.Sprintf("  step %d/%d\n", m.step, m.steps))

	name := m.watch[m.selected]
	if h := m.history[name]; len(h) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(h,
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
			asciigraph.Caption(name),
		)))
		b.WriteString("\n")
	}

	var stats strings.Builder
	for i, n := range m.watch {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		stats.WriteString(marker + labelStyle.Render(n) +
			valueStyle.Render(fmt.Sprintf("%10.4g  ", m.fields[i].Mean())) +
			Sparkline(m.history[n], 24) + "\n")
	}
	b.WriteString(statsStyle.Render(stats.String()))
	b.WriteString("\n")

	if m.profile != nil {
		b.WriteString(Profile(m.profile, 0))
	}
	if m.err != nil {
		b.WriteString(fmt.Sprintf("error: %v\n", m.err))
	}
	b.WriteString(helpStyle.Render("space pause · s step · tab variable · q quit"))
	return b.String()
}

// RunLive initializes the simulator and blocks in the live view until
// the user quits.
func RunLive(sim *engine.Simulator, steps int, watch []string) error {
	if err := sim.Initialize(); err != nil {
		return err
	}
	m, err := NewModel(sim, steps, watch)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
