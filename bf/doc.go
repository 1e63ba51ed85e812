// Package bf implements the ringtape execution engine, an interpreter for
// the eight-instruction tape language:
//   - `>` and `<` move the cursor over a fixed-size circular byte tape.
//   - `+` and `-` increment and decrement the current cell modulo 256.
//   - `.` emits the current cell to the host, `,` asks the host for an
//     integer and stores its low eight bits.
//   - `[` and `]` delimit loops resolved with a stack of start positions.
//
// Every other byte is ignored, so source text may carry whitespace and
// comments freely. Loop bodies always run at least once: `[` records its
// position without inspecting the cell and `]` jumps back while the cell is
// nonzero. Tape contents and the cursor persist across Parse calls until the
// owner calls Reset.
package bf
