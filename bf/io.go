package bf

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Output receives bytes emitted by `.`. EmitByte is called synchronously at
// the moment the instruction is scanned.
type Output interface {
	EmitByte(b byte) error
}

// Input supplies integers for `,`. RequestInteger blocks until the host has a
// value; the engine keeps only its low eight bits.
type Input interface {
	RequestInteger() (int, error)
}

// OutputFunc adapts a plain function to Output.
type OutputFunc func(b byte) error

func (f OutputFunc) EmitByte(b byte) error {
	return f(b)
}

// InputFunc adapts a plain function to Input.
type InputFunc func() (int, error)

func (f InputFunc) RequestInteger() (int, error) {
	return f()
}

type writerOutput struct {
	w   io.Writer
	buf [1]byte
}

// WriterOutput writes each emitted byte straight to w.
func WriterOutput(w io.Writer) Output {
	return &writerOutput{w: w}
}

func (o *writerOutput) EmitByte(b byte) error {
	o.buf[0] = b
	_, err := o.w.Write(o.buf[:])
	return err
}

type discardOutput struct{}

func (discardOutput) EmitByte(byte) error {
	return nil
}

type missingInput struct{}

func (missingInput) RequestInteger() (int, error) {
	return 0, &InputParseError{Err: ErrNoInput}
}

// TokenInput reads whitespace-delimited tokens of any length from a reader.
// The same stream can hold program text and integer answers, which is how
// the line shell uses it.
type TokenInput struct {
	scanner *bufio.Scanner
}

func NewTokenInput(r io.Reader) *TokenInput {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	scanner.Split(bufio.ScanWords)
	return &TokenInput{scanner: scanner}
}

// Token returns the next whitespace-delimited token, or io.EOF once the
// stream is exhausted.
func (in *TokenInput) Token() (string, error) {
	if in.scanner.Scan() {
		return in.scanner.Text(), nil
	}
	if err := in.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (in *TokenInput) RequestInteger() (int, error) {
	token, err := in.Token()
	if err != nil {
		return 0, &InputParseError{Err: err}
	}
	return ParseInteger(token)
}

// StaticInput answers requests from a fixed queue of values.
type StaticInput struct {
	values []int
}

func NewStaticInput(values ...int) *StaticInput {
	return &StaticInput{values: append([]int(nil), values...)}
}

func (in *StaticInput) RequestInteger() (int, error) {
	if len(in.values) == 0 {
		return 0, &InputParseError{Err: io.EOF}
	}
	v := in.values[0]
	in.values = in.values[1:]
	return v, nil
}

// Remaining reports how many values have not been consumed yet.
func (in *StaticInput) Remaining() int {
	return len(in.values)
}

// ParseInteger reads a decimal integer from the start of token. Leading
// whitespace and a single sign are accepted and anything after the digits is
// ignored, so "12abc" yields 12. Values outside the 32-bit range are rejected.
func ParseInteger(token string) (int, error) {
	s := strings.TrimLeftFunc(token, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, &InputParseError{Token: token}
	}

	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &InputParseError{Token: token, Err: strconv.ErrRange}
	}
	return int(v), nil
}
