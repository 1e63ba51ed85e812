package bf

import (
	"errors"
	"fmt"
)

// execution holds the state scoped to one Parse call.
type execution struct {
	engine     *Engine
	tape       *Tape
	source     string
	pc         int
	loops      []int
	steps      int
	quota      int
	emitted    byte
	hasEmitted bool
}

func newExecution(e *Engine, source string) *execution {
	return &execution{
		engine: e,
		tape:   e.tape,
		source: source,
		quota:  e.config.StepQuota,
	}
}

func (exec *execution) run() error {
	for exec.pc = 0; exec.pc < len(exec.source); exec.pc++ {
		op := Decode(exec.source[exec.pc])
		if op == OpNone {
			continue
		}
		if err := exec.step(); err != nil {
			return err
		}
		pc := exec.pc
		if err := exec.dispatch(op); err != nil {
			return err
		}
		exec.trace(op, pc)
	}
	return nil
}

func (exec *execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d) at position %d", ErrStepQuotaExceeded, exec.quota, exec.pc)
	}
	return nil
}

func (exec *execution) dispatch(op Instruction) error {
	switch op {
	case OpAdvance:
		exec.tape.Advance()
	case OpRetreat:
		exec.tape.Retreat()
	case OpIncrement:
		exec.tape.Increment()
	case OpDecrement:
		exec.tape.Decrement()
	case OpOutput:
		return exec.output()
	case OpInput:
		return exec.input()
	case OpLoopStart:
		exec.loopStart()
	case OpLoopEnd:
		return exec.loopEnd()
	}
	return nil
}

func (exec *execution) output() error {
	b := exec.tape.Read()
	exec.emitted, exec.hasEmitted = b, true
	if err := exec.engine.config.Output.EmitByte(b); err != nil {
		return fmt.Errorf("emit at position %d: %w", exec.pc, err)
	}
	return nil
}

func (exec *execution) input() error {
	v, err := exec.engine.config.Input.RequestInteger()
	if err != nil {
		var parseErr *InputParseError
		if errors.As(err, &parseErr) {
			return err
		}
		return &InputParseError{Err: err}
	}
	exec.tape.Write(byte(v))
	return nil
}

func (exec *execution) trace(op Instruction, pc int) {
	fn := exec.engine.config.Trace
	if fn == nil {
		return
	}
	fn(TraceEvent{
		Instruction: op,
		PC:          pc,
		Snapshot:    exec.tape.Snapshot(),
		Emitted:     exec.emitted,
		HasEmitted:  exec.hasEmitted,
	})
	exec.emitted, exec.hasEmitted = 0, false
}
