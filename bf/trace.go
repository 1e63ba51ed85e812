package bf

import (
	"fmt"
	"strings"
)

// TraceFunc observes the engine after every dispatched instruction. It
// receives copies and cannot affect execution.
type TraceFunc func(TraceEvent)

// TraceEvent describes engine state right after one instruction ran.
type TraceEvent struct {
	Instruction Instruction
	PC          int
	Snapshot    Snapshot
	// Emitted is the byte produced by `.` since the previous trace call.
	Emitted    byte
	HasEmitted bool
}

// FormatTrace renders an event as a single debug line:
//
//	[+] 00(01)00    A
//
// Cells are two hex digits each with the cursor cell in parentheses,
// followed by the emitted byte when there is one.
func FormatTrace(ev TraceEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%c] ", ev.Instruction.Symbol())
	writeCells(&b, ev.Snapshot)
	b.WriteString("    ")
	if ev.HasEmitted {
		b.WriteByte(ev.Emitted)
	}
	return b.String()
}

// FormatSnapshot renders just the cells of s in trace notation.
func FormatSnapshot(s Snapshot) string {
	var b strings.Builder
	writeCells(&b, s)
	return b.String()
}

func writeCells(b *strings.Builder, s Snapshot) {
	for i, cell := range s.Cells {
		if i == s.Cursor {
			fmt.Fprintf(b, "(%02x)", cell)
			continue
		}
		fmt.Fprintf(b, "%02x", cell)
	}
}
