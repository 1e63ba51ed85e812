package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/ringtape/bf"
)

func newTestREPL(t *testing.T, debug bool) replModel {
	t.Helper()
	m, err := newREPLModel(bf.Config{TapeSize: 4}, debug)
	if err != nil {
		t.Fatalf("new repl: %v", err)
	}
	return m
}

// submit types text into the prompt and presses enter.
func submit(t *testing.T, m replModel, text string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(text)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m replModel, cmd tea.Cmd) replModel {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	model, _ := m.Update(cmd())
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newTestREPL(t, false)
	rm, cmd := submit(t, m, ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	m := newTestREPL(t, false)
	rm, cmd := submit(t, m, ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
}

func TestProgramOutputIsRecorded(t *testing.T) {
	m := newTestREPL(t, false)
	m, cmd := submit(t, m, "++++++++[>++++++++<-]>+.")
	if !m.running {
		t.Fatalf("model should be running")
	}
	m = deliver(t, m, cmd)

	if m.running {
		t.Fatalf("model should be idle after the run")
	}
	if len(m.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(m.history))
	}
	entry := m.history[0]
	if entry.isErr || entry.output != "A" || entry.input != "++++++++[>++++++++<-]>+." {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if m.snapshot.Cursor != 1 || m.snapshot.Cells[1] != 65 {
		t.Fatalf("snapshot not refreshed: %+v", m.snapshot)
	}
	if len(m.cmdHistory) != 1 {
		t.Fatalf("program not added to command history")
	}
}

func TestColonPrefixedInputRunsAsProgram(t *testing.T) {
	m := newTestREPL(t, false)
	m, cmd := submit(t, m, ":+")
	if !m.running {
		t.Fatalf(":+ should run as a program")
	}
	m = deliver(t, m, cmd)

	if m.history[0].isErr || m.snapshot.Cells[0] != 1 {
		t.Fatalf("cell not incremented: %+v %+v", m.history[0], m.snapshot)
	}
}

func TestTapePersistsBetweenPrograms(t *testing.T) {
	m := newTestREPL(t, false)
	m, cmd := submit(t, m, "+++")
	m = deliver(t, m, cmd)
	m, cmd = submit(t, m, "+.")
	m = deliver(t, m, cmd)

	if got := m.history[1].output; got != "\x04" {
		t.Fatalf("expected accumulated value, got %q", got)
	}
}

func TestInputRequestSwitchesPrompt(t *testing.T) {
	m := newTestREPL(t, false)
	m, cmd := submit(t, m, ",.")
	m = deliver(t, m, cmd)

	if !m.awaitingInput {
		t.Fatalf("model should wait for an integer")
	}
	if m.textInput.Prompt != inputPrompt {
		t.Fatalf("unexpected prompt %q", m.textInput.Prompt)
	}

	m, cmd = submit(t, m, "zz")
	m = deliver(t, m, cmd)
	if !m.awaitingInput || !strings.Contains(m.inputErr, "not an integer") {
		t.Fatalf("bad answer should reprompt, err %q", m.inputErr)
	}

	m, cmd = submit(t, m, "66")
	m = deliver(t, m, cmd)
	if m.awaitingInput || m.running {
		t.Fatalf("model should be idle after the run")
	}
	if m.textInput.Prompt != programPrompt {
		t.Fatalf("prompt not restored: %q", m.textInput.Prompt)
	}
	if got := m.history[0].output; got != "B" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestMalformedProgramIsShownAsError(t *testing.T) {
	m := newTestREPL(t, false)
	m, cmd := submit(t, m, "+]")
	m = deliver(t, m, cmd)

	entry := m.history[0]
	if !entry.isErr || !strings.Contains(entry.output, "unmatched ']'") {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if m.snapshot.Cells[0] != 1 {
		t.Fatalf("partial state lost: %+v", m.snapshot)
	}
}

func TestDebugModeRecordsTrace(t *testing.T) {
	m := newTestREPL(t, true)
	if !m.showTape {
		t.Fatalf("debug mode should show the tape panel")
	}
	m, cmd := submit(t, m, "+.")
	m = deliver(t, m, cmd)

	entry := m.history[0]
	want := []string{"[+] (01)000000    ", "[.] (01)000000    \x01"}
	if len(entry.trace) != len(want) {
		t.Fatalf("unexpected trace %q", entry.trace)
	}
	for i := range want {
		if entry.trace[i] != want[i] {
			t.Fatalf("unexpected trace %q", entry.trace)
		}
	}
	if entry.output != "" {
		t.Fatalf("debug output belongs in the trace, got %q", entry.output)
	}
}

func TestResetCommandZeroesTape(t *testing.T) {
	m := newTestREPL(t, false)
	m, cmd := submit(t, m, "+++>")
	m = deliver(t, m, cmd)
	m, _ = submit(t, m, ":reset")

	if m.snapshot.Cursor != 0 || m.snapshot.Cells[0] != 0 {
		t.Fatalf("tape not reset: %+v", m.snapshot)
	}
	if m.session.engine.Tape().Cells()[0] != 0 {
		t.Fatalf("engine tape not reset")
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := newTestREPL(t, false)
	for _, program := range []string{"+", "-"} {
		var cmd tea.Cmd
		m, cmd = submit(t, m, program)
		m = deliver(t, m, cmd)
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "-" {
		t.Fatalf("expected last program, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "+" {
		t.Fatalf("expected first program, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if m.textInput.Value() != "" {
		t.Fatalf("expected empty prompt, got %q", m.textInput.Value())
	}
}

func TestViewRendersTapePanel(t *testing.T) {
	m := newTestREPL(t, false)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = submit(t, m, ":tape")

	view := m.View()
	if !strings.Contains(view, "Tape") || !strings.Contains(view, "cursor 0 of 4") {
		t.Fatalf("tape panel missing from view:\n%s", view)
	}
}

func TestPrintableOutput(t *testing.T) {
	if got := printableOutput(""); got != "(no output)" {
		t.Fatalf("unexpected %q", got)
	}
	if got := printableOutput("A\x01B"); got != "A·B" {
		t.Fatalf("unexpected %q", got)
	}
}
