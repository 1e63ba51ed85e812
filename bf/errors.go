package bf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const sourceFrameHalfWindow = 24

var (
	ErrMalformedProgram  = errors.New("malformed program")
	ErrInputParse        = errors.New("input parse error")
	ErrNoInput           = errors.New("no input source configured")
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
)

// MalformedProgramError reports a `]` reached while no loop was open.
type MalformedProgramError struct {
	Pos    int
	Source string
}

func (e *MalformedProgramError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: unmatched ']' at position %d", ErrMalformedProgram, e.Pos)
	if frame := formatSourceFrame(e.Source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (e *MalformedProgramError) Is(target error) bool {
	return target == ErrMalformedProgram
}

// InputParseError reports a `,` whose integer could not be obtained. Token is
// the raw text when the host had one; Err carries the underlying cause.
type InputParseError struct {
	Token string
	Err   error
}

func (e *InputParseError) Error() string {
	switch {
	case e.Token != "" && e.Err != nil:
		return fmt.Sprintf("%s: %q: %v", ErrInputParse, e.Token, e.Err)
	case e.Token != "":
		return fmt.Sprintf("%s: %q is not an integer", ErrInputParse, e.Token)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", ErrInputParse, e.Err)
	default:
		return ErrInputParse.Error()
	}
}

func (e *InputParseError) Is(target error) bool {
	return target == ErrInputParse
}

func (e *InputParseError) Unwrap() error {
	return e.Err
}

// formatSourceFrame renders a window of the source around pos with a caret
// under the offending byte. Sources read from files are a single line, so
// only a bounded slice either side of pos is shown.
func formatSourceFrame(source string, pos int) string {
	if source == "" || pos < 0 || pos >= len(source) {
		return ""
	}

	start := max(pos-sourceFrameHalfWindow, 0)
	end := min(pos+sourceFrameHalfWindow+1, len(source))
	window := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, source[start:end])

	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(source) {
		suffix = "..."
	}

	label := strconv.Itoa(pos)
	gutterPad := strings.Repeat(" ", len(label))
	caretPad := strings.Repeat(" ", len(prefix)+pos-start)

	return fmt.Sprintf(
		"  --> position %d\n %s | %s%s%s\n %s | %s^",
		pos,
		label,
		prefix,
		window,
		suffix,
		gutterPad,
		caretPad,
	)
}
