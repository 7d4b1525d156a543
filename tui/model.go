// Package tui is the terminal front end: port selection, tempo, a metronome
// readout and the input/output logs.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-accompany/bayes"
	"go-accompany/config"
	"go-accompany/debug"
	"go-accompany/midi"
	"go-accompany/perform"
)

const maxLogLines = 10

// Channel messages from the engine goroutines.
type stepMsg perform.StepInfo

type inputMsg struct {
	note       uint8
	velocity   uint8
	instrument bayes.Instrument
}

type errMsg string

// Model is the bubbletea model for the performer UI.
type Model struct {
	Performer *perform.Performer
	Cfg       *config.Config

	steps  chan perform.StepInfo
	inputs chan inputMsg
	errs   chan string

	inPorts  []string
	outPorts []string
	focusOut bool // false: input list focused
	selIn    int
	selOut   int

	connectedIn  string
	connectedOut string
	stopListen   func()

	bar, beat, sub int

	inputLog  []string
	outputLog []string

	quitting bool
}

// NewModel wires the model to a performer and scans the ports.
func NewModel(p *perform.Performer, cfg *config.Config) *Model {
	m := &Model{
		Performer: p,
		Cfg:       cfg,
		steps:     make(chan perform.StepInfo, 16),
		inputs:    make(chan inputMsg, 16),
		errs:      make(chan string, 4),
		inPorts:   midi.InPortNames(),
		outPorts:  midi.OutPortNames(),
		bar:       1,
		beat:      1,
	}

	p.OnStep = func(si perform.StepInfo) {
		select {
		case m.steps <- si:
		default: // UI is behind, drop
		}
	}
	p.OnNoSink = func() {
		select {
		case m.errs <- "No output selected!":
		default:
		}
	}
	return m
}

func (m *Model) waitForStep() tea.Cmd {
	return func() tea.Msg { return stepMsg(<-m.steps) }
}

func (m *Model) waitForInput() tea.Cmd {
	return func() tea.Msg { return inputMsg(<-m.inputs) }
}

func (m *Model) waitForErr() tea.Cmd {
	return func() tea.Msg { return errMsg(<-m.errs) }
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStep(), m.waitForInput(), m.waitForErr())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stepMsg:
		si := perform.StepInfo(msg)
		m.bar, m.beat, m.sub = si.Bar, si.Beat, si.Sub
		if si.Decision.ShouldPlay {
			d := si.Decision
			m.pushOutput(fmt.Sprintf("[%s] PLAY note %d vel %d ch %d | %s",
				time.Now().Format("15:04:05"), d.Note, d.Velocity, d.Channel, d.Explain))
		}
		return m, m.waitForStep()

	case inputMsg:
		m.pushInput(fmt.Sprintf("[%s] NOTE %d vel %d (%s)",
			time.Now().Format("15:04:05"), msg.note, msg.velocity, msg.instrument))
		return m, m.waitForInput()

	case errMsg:
		m.pushOutput(fmt.Sprintf("[%s] ERROR %s", time.Now().Format("15:04:05"), string(msg)))
		return m, m.waitForErr()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Performer.Stop()
		if m.stopListen != nil {
			m.stopListen()
		}
		return m, tea.Quit

	case " ":
		if m.Performer.Toggle() {
			m.bar, m.beat, m.sub = 1, 1, 0
			m.pushOutput("Performance started")
		} else {
			m.pushOutput("Performance stopped")
		}

	case "+", "=":
		m.setTempo(m.Performer.BPM() + 5)

	case "-", "_":
		m.setTempo(m.Performer.BPM() - 5)

	case "tab":
		m.focusOut = !m.focusOut

	case "j", "down":
		m.moveCursor(1)

	case "k", "up":
		m.moveCursor(-1)

	case "r":
		m.inPorts = midi.InPortNames()
		m.outPorts = midi.OutPortNames()
		m.clampCursors()

	case "enter":
		m.connectSelected()
	}

	return m, nil
}

func (m *Model) setTempo(bpm int) {
	if err := m.Performer.SetBPM(bpm); err != nil {
		m.pushOutput(fmt.Sprintf("ERROR %v", err))
		return
	}
	m.Cfg.Tempo = bpm
}

func (m *Model) moveCursor(delta int) {
	if m.focusOut {
		m.selOut += delta
	} else {
		m.selIn += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.selIn = clamp(m.selIn, len(m.inPorts))
	m.selOut = clamp(m.selOut, len(m.outPorts))
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// connectSelected opens the highlighted port: the input side starts the
// listener, the output side swaps the scheduler's sender.
func (m *Model) connectSelected() {
	if m.focusOut {
		if m.selOut >= len(m.outPorts) {
			return
		}
		name := m.outPorts[m.selOut]
		send, err := midi.OpenSender(name)
		if err != nil {
			m.pushOutput(fmt.Sprintf("ERROR %v", err))
			return
		}
		m.Performer.SetSender(send)
		m.connectedOut = name
		m.Cfg.OutPort = name
		m.pushOutput(fmt.Sprintf("Output: %s", name))
		return
	}

	if m.selIn >= len(m.inPorts) {
		return
	}
	name := m.inPorts[m.selIn]
	if m.stopListen != nil {
		m.stopListen()
		m.stopListen = nil
	}
	stop, err := midi.Listen(name, m.Cfg.Identify,
		func(ev perform.InputEvent) {
			if m.Performer.Running() {
				m.Performer.Record(ev)
			}
		},
		func(note, vel uint8) {
			select {
			case m.inputs <- inputMsg{note: note, velocity: vel, instrument: m.Cfg.Identify(note)}:
			default:
			}
		})
	if err != nil {
		m.pushInput(fmt.Sprintf("ERROR %v", err))
		return
	}
	m.stopListen = stop
	m.connectedIn = name
	m.Cfg.InPort = name
	m.pushInput(fmt.Sprintf("Listening: %s", name))
}

func (m *Model) pushInput(line string) {
	m.inputLog = pushLine(m.inputLog, line)
}

func (m *Model) pushOutput(line string) {
	m.outputLog = pushLine(m.outputLog, line)
	debug.Log("tui", "%s", line)
}

func pushLine(log []string, line string) []string {
	log = append(log, line)
	if len(log) > maxLogLines {
		log = log[len(log)-maxLogLines:]
	}
	return log
}

var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	beatOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	beatOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// metronome renders the beat digit and the subdivision dots, downbeat
// highlighted.
func (m *Model) metronome() string {
	dots := make([]string, 4)
	for i := range dots {
		switch {
		case i == m.sub && i == 0:
			dots[i] = beatOnStyle.Render("O")
		case i == m.sub:
			dots[i] = accentStyle.Render("X")
		default:
			dots[i] = beatOffStyle.Render(".")
		}
	}
	return fmt.Sprintf("bar %d  beat %d  %s", m.bar, m.beat, strings.Join(dots, " "))
}

func (m *Model) portList(title string, ports []string, sel int, connected string, focused bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(ports) == 0 {
		b.WriteString(dimStyle.Render("  (no ports)"))
		return b.String()
	}
	for i, p := range ports {
		cursor := "  "
		if focused && i == sel {
			cursor = "> "
		}
		mark := " "
		if p == connected {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, p)
		if focused && i == sel {
			line = accentStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func logPanel(title string, lines []string) string {
	body := dimStyle.Render("(quiet)")
	if len(lines) > 0 {
		body = strings.Join(lines, "\n")
	}
	return panelStyle.Render(titleStyle.Render(title) + "\n" + body)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	playState := "STOP"
	if m.Performer.Running() {
		playState = "PLAY"
	}
	header := accentStyle.Render(fmt.Sprintf("go-accompany  %s  %3dbpm  %s",
		playState, m.Performer.BPM(), m.metronome()))

	ports := lipgloss.JoinVertical(lipgloss.Left,
		m.portList("MIDI Input", m.inPorts, m.selIn, m.connectedIn, !m.focusOut),
		"",
		m.portList("MIDI Output", m.outPorts, m.selOut, m.connectedOut, m.focusOut),
	)

	logs := lipgloss.JoinVertical(lipgloss.Left,
		logPanel("Input History", m.inputLog),
		logPanel("Generated Output", m.outputLog),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(ports), " ", logs)

	help := dimStyle.Render("space:start/stop  +/-:tempo  tab:in/out  j/k:select  enter:connect  r:rescan  q:quit")

	return "\n" + header + "\n\n" + body + "\n" + help + "\n"
}
