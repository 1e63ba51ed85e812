package bf

func (exec *execution) pushLoop(pc int) {
	exec.loops = append(exec.loops, pc)
}

func (exec *execution) currentLoop() (int, bool) {
	if len(exec.loops) == 0 {
		return 0, false
	}
	return exec.loops[len(exec.loops)-1], true
}

func (exec *execution) popLoop() {
	if len(exec.loops) == 0 {
		return
	}
	exec.loops = exec.loops[:len(exec.loops)-1]
}

func (exec *execution) openLoops() int {
	return len(exec.loops)
}

// loopStart records the position of a `[`. The cell is not inspected, so the
// body always runs at least once.
func (exec *execution) loopStart() {
	exec.pushLoop(exec.pc)
}

// loopEnd resolves a `]`: jump back to the innermost open `[` while the cell
// is nonzero, otherwise close that loop. The jump lands on the `[` itself and
// the scan advances past it, so the start is never pushed twice.
func (exec *execution) loopEnd() error {
	start, ok := exec.currentLoop()
	if !ok {
		return &MalformedProgramError{Pos: exec.pc, Source: exec.source}
	}
	if exec.tape.Read() != 0 {
		exec.pc = start
		return nil
	}
	exec.popLoop()
	return nil
}
