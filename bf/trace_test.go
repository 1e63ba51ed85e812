package bf

import (
	"strings"
	"testing"
)

func TestFormatTrace(t *testing.T) {
	tests := []struct {
		name string
		ev   TraceEvent
		want string
	}{
		{
			name: "cursor at start",
			ev: TraceEvent{
				Instruction: OpIncrement,
				Snapshot:    Snapshot{Cells: []byte{1, 0, 0, 0}, Cursor: 0},
			},
			want: "[+] (01)000000    ",
		},
		{
			name: "cursor in middle with output",
			ev: TraceEvent{
				Instruction: OpOutput,
				Snapshot:    Snapshot{Cells: []byte{0, 0x41, 0xff}, Cursor: 1},
				Emitted:     'A',
				HasEmitted:  true,
			},
			want: "[.] 00(41)ff    A",
		},
		{
			name: "cursor at end",
			ev: TraceEvent{
				Instruction: OpRetreat,
				Snapshot:    Snapshot{Cells: []byte{0x10, 0x0a}, Cursor: 1},
			},
			want: "[<] 10(0a)    ",
		},
	}
	for _, tt := range tests {
		if got := FormatTrace(tt.ev); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatSnapshotFromEngine(t *testing.T) {
	engine := MustNewEngine(Config{TapeSize: 3})
	if err := engine.Parse("++>+++>-"); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := FormatSnapshot(engine.Tape().Snapshot())
	if got != "0203(ff)" {
		t.Fatalf("unexpected snapshot %q", got)
	}
}

func TestTraceLinesForDebugSession(t *testing.T) {
	var lines []string
	engine := MustNewEngine(Config{TapeSize: 2, Trace: func(ev TraceEvent) {
		lines = append(lines, FormatTrace(ev))
	}})
	engine.Tape().Write(0x40)
	if err := engine.Parse("+.<"); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []string{
		"[+] (41)00    ",
		"[.] (41)00    A",
		"[<] 41(00)    ",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected trace:\n%s", strings.Join(lines, "\n"))
	}
}
