package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/ringtape/bf"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	cursorCellStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	programPrompt = "bf> "
	inputPrompt   = "in> "
)

type historyEntry struct {
	input  string
	output string
	trace  []string
	isErr  bool
}

// inputRequestMsg arrives when the running program reached `,`. err is set
// when the previous answer could not be parsed.
type inputRequestMsg struct {
	err error
}

type runDoneMsg struct {
	output   string
	trace    []string
	snapshot bf.Snapshot
	err      error
}

// session runs programs on a goroutine so a blocking `,` can be answered
// from the prompt. Only one program runs at a time.
type session struct {
	engine  *bf.Engine
	events  chan tea.Msg
	answers chan string
	output  bytes.Buffer
	trace   []string
}

func newSession(cfg bf.Config, debug bool) (*session, error) {
	s := &session{
		events:  make(chan tea.Msg),
		answers: make(chan string, 1),
	}
	cfg.Input = bf.InputFunc(s.requestInteger)
	cfg.Output = bf.OutputFunc(func(b byte) error {
		return s.output.WriteByte(b)
	})
	if debug {
		cfg.Output = nil
		cfg.Trace = func(ev bf.TraceEvent) {
			s.trace = append(s.trace, bf.FormatTrace(ev))
		}
	}
	engine, err := bf.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

func (s *session) requestInteger() (int, error) {
	var lastErr error
	for {
		s.events <- inputRequestMsg{err: lastErr}
		answer, ok := <-s.answers
		if !ok {
			return 0, &bf.InputParseError{Err: io.EOF}
		}
		v, err := bf.ParseInteger(answer)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
}

func (s *session) run(source string) tea.Cmd {
	s.output.Reset()
	s.trace = nil
	go func() {
		err := s.engine.Parse(source)
		s.events <- runDoneMsg{
			output:   s.output.String(),
			trace:    s.trace,
			snapshot: s.engine.Tape().Snapshot(),
			err:      err,
		}
	}()
	return s.wait
}

func (s *session) answer(text string) tea.Cmd {
	s.answers <- text
	return s.wait
}

func (s *session) wait() tea.Msg {
	return <-s.events
}

type replModel struct {
	textInput     textinput.Model
	session       *session
	snapshot      bf.Snapshot
	history       []historyEntry
	cmdHistory    []string
	historyIdx    int
	pending       string
	inputErr      string
	width         int
	height        int
	debug         bool
	running       bool
	awaitingInput bool
	showHelp      bool
	showTape      bool
	quitting      bool
	initialized   bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	CtrlT key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous program"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next program"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	CtrlT: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle tape"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg bf.Config, debug bool) (replModel, error) {
	ti := textinput.New()
	ti.Placeholder = "type a program..."
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = programPrompt

	sess, err := newSession(cfg, debug)
	if err != nil {
		return replModel{}, err
	}

	return replModel{
		textInput:  ti,
		session:    sess,
		snapshot:   sess.engine.Tape().Snapshot(),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
		debug:      debug,
		showTape:   debug,
	}, nil
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case inputRequestMsg:
		m.awaitingInput = true
		m.inputErr = ""
		if msg.err != nil {
			m.inputErr = msg.err.Error()
		}
		m.textInput.Prompt = inputPrompt
		m.textInput.PromptStyle = inputPromptStyle
		m.textInput.Placeholder = "integer for ','"
		return m, nil

	case runDoneMsg:
		entry := historyEntry{
			input:  m.pending,
			output: msg.output,
			trace:  msg.trace,
		}
		if msg.err != nil {
			entry.output = msg.err.Error()
			entry.isErr = true
		}
		m.history = append(m.history, entry)
		m.snapshot = msg.snapshot
		m.pending = ""
		m.running = false
		m.endInput()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlT):
			m.showTape = !m.showTape
			return m, nil

		case key.Matches(msg, keys.CtrlK):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.awaitingInput {
				return m, nil
			}
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.awaitingInput {
				return m, nil
			}
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if m.awaitingInput {
				m.textInput.SetValue("")
				m.awaitingInput = false
				return m, m.session.answer(input)
			}
			if m.running {
				return m, nil
			}

			if replCommands[input] {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			m.pending = input
			m.running = true
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, m.session.run(input)
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *replModel) endInput() {
	m.awaitingInput = false
	m.inputErr = ""
	m.textInput.Prompt = programPrompt
	m.textInput.PromptStyle = promptStyle
	m.textInput.Placeholder = "type a program..."
}

// replCommands lists the inputs handled by the TUI itself. Everything else,
// including other text starting with `:`, runs as a program.
var replCommands = map[string]bool{
	":help": true, ":h": true,
	":clear": true, ":c": true,
	":tape": true, ":t": true,
	":reset": true, ":r": true,
	":quit": true, ":q": true,
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	switch input {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":tape", ":t":
		m.showTape = !m.showTape
	case ":reset", ":r":
		m.session.engine.Reset()
		m.snapshot = m.session.engine.Tape().Snapshot()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Tape reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// printableOutput replaces control bytes so raw program output cannot move
// the terminal cursor.
func printableOutput(s string) string {
	if s == "" {
		return "(no output)"
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || unicode.IsPrint(r) {
			return r
		}
		return '·'
	}, s)
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("ringtape")
	b.WriteString(header + " " + mutedStyle.Render(version) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8 // header, input, help hint, etc.
	if m.showHelp {
		reservedLines += 10
	}
	if m.showTape {
		reservedLines += 4
	}
	availableHeight := max(m.height-reservedLines, 1)

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		for _, line := range entry.trace {
			b.WriteString("    " + mutedStyle.Render(line) + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+printableOutput(entry.output)) + "\n")
		}
		b.WriteString("\n")
	}

	if m.running && m.pending != "" {
		b.WriteString(mutedStyle.Render("  › ") + m.pending + "\n")
		if m.awaitingInput {
			b.WriteString("  " + helpKeyStyle.Render("waiting for an integer") + "\n")
		}
		if m.inputErr != "" {
			b.WriteString("  " + errorStyle.Render("✗ "+m.inputErr) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showTape {
		b.WriteString(renderTapePanel(m.snapshot))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+t") + helpDescStyle.Render(" tape  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderTapePanel(snap bf.Snapshot) string {
	var cells strings.Builder
	for i, cell := range snap.Cells {
		if i > 0 {
			cells.WriteString(" ")
		}
		text := fmt.Sprintf("%02x", cell)
		if i == snap.Cursor {
			cells.WriteString(cursorCellStyle.Render("(" + text + ")"))
			continue
		}
		cells.WriteString(text)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Tape"),
		"  " + cells.String(),
		mutedStyle.Render(fmt.Sprintf("  cursor %d of %d", snap.Cursor, len(snap.Cells))),
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate program history"},
		{"Enter", "Execute program"},
		{":help", "Toggle this help"},
		{":tape", "Toggle tape panel"},
		{":clear", "Clear history"},
		{":reset", "Zero the tape"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(cfg bf.Config, debug bool) error {
	model, err := newREPLModel(cfg, debug)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
