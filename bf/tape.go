package bf

import "fmt"

const (
	// DefaultTapeSize is the number of cells used when Config.TapeSize is zero.
	DefaultTapeSize = 16
	// MaxTapeSize bounds the allocation a single tape may make.
	MaxTapeSize = 1 << 24
)

// Tape is a fixed-length byte buffer addressed through a wraparound cursor.
type Tape struct {
	cells  []byte
	cursor int
}

// Snapshot is a point-in-time copy of the tape and its cursor.
type Snapshot struct {
	Cells  []byte
	Cursor int
}

// NewTape allocates a zeroed tape with size cells.
func NewTape(size int) (*Tape, error) {
	if size < 1 || size > MaxTapeSize {
		return nil, fmt.Errorf("bf: tape size must be between 1 and %d, got %d", MaxTapeSize, size)
	}
	return &Tape{cells: make([]byte, size)}, nil
}

// Len reports the number of cells. It never changes after construction.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cursor reports the index of the current cell.
func (t *Tape) Cursor() int {
	return t.cursor
}

// Advance moves the cursor one cell right, wrapping past the last cell.
func (t *Tape) Advance() {
	t.cursor = (t.cursor + 1) % len(t.cells)
}

// Retreat moves the cursor one cell left, wrapping before the first cell.
func (t *Tape) Retreat() {
	t.cursor = (t.cursor - 1 + len(t.cells)) % len(t.cells)
}

// Increment adds one to the current cell; 255 wraps to 0.
func (t *Tape) Increment() {
	t.cells[t.cursor]++
}

// Decrement subtracts one from the current cell; 0 wraps to 255.
func (t *Tape) Decrement() {
	t.cells[t.cursor]--
}

// Read returns the value of the current cell.
func (t *Tape) Read() byte {
	return t.cells[t.cursor]
}

// Write stores b in the current cell.
func (t *Tape) Write(b byte) {
	t.cells[t.cursor] = b
}

// Reset zeroes every cell and moves the cursor back to the first cell.
func (t *Tape) Reset() {
	clear(t.cells)
	t.cursor = 0
}

// Cells returns a copy of the tape contents.
func (t *Tape) Cells() []byte {
	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out
}

// Snapshot copies the cells and cursor.
func (t *Tape) Snapshot() Snapshot {
	return Snapshot{Cells: t.Cells(), Cursor: t.cursor}
}
