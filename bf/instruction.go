package bf

// Instruction is the decoded kind of a single source byte.
type Instruction uint8

const (
	OpNone Instruction = iota
	OpAdvance
	OpRetreat
	OpIncrement
	OpDecrement
	OpOutput
	OpInput
	OpLoopStart
	OpLoopEnd
)

// Decode maps a source byte to its instruction. Bytes outside the
// instruction set decode to OpNone.
func Decode(c byte) Instruction {
	switch c {
	case '>':
		return OpAdvance
	case '<':
		return OpRetreat
	case '+':
		return OpIncrement
	case '-':
		return OpDecrement
	case '.':
		return OpOutput
	case ',':
		return OpInput
	case '[':
		return OpLoopStart
	case ']':
		return OpLoopEnd
	default:
		return OpNone
	}
}

// Symbol returns the source byte for op, or 0 for OpNone.
func (op Instruction) Symbol() byte {
	switch op {
	case OpAdvance:
		return '>'
	case OpRetreat:
		return '<'
	case OpIncrement:
		return '+'
	case OpDecrement:
		return '-'
	case OpOutput:
		return '.'
	case OpInput:
		return ','
	case OpLoopStart:
		return '['
	case OpLoopEnd:
		return ']'
	default:
		return 0
	}
}

func (op Instruction) String() string {
	switch op {
	case OpAdvance:
		return "advance"
	case OpRetreat:
		return "retreat"
	case OpIncrement:
		return "increment"
	case OpDecrement:
		return "decrement"
	case OpOutput:
		return "output"
	case OpInput:
		return "input"
	case OpLoopStart:
		return "loop_start"
	case OpLoopEnd:
		return "loop_end"
	default:
		return "none"
	}
}
