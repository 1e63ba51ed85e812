package bf

import (
	"errors"
	"testing"
)

func FuzzParseDoesNotPanic(f *testing.F) {
	f.Add([]byte(""), 16)
	f.Add([]byte("+[-]"), 1)
	f.Add([]byte("]]]["), 3)
	f.Add([]byte(",.,.<<<>>>"), 2)
	f.Add([]byte("++++++++[>++++++++<-]>+."), 16)

	f.Fuzz(func(t *testing.T, raw []byte, size int) {
		if size < 1 || size > 4096 {
			size = DefaultTapeSize
		}
		engine := MustNewEngine(Config{
			TapeSize:  size,
			StepQuota: 100_000,
			Input:     NewStaticInput(1, 2, 3),
		})
		err := engine.Parse(string(raw))
		if err != nil &&
			!errors.Is(err, ErrMalformedProgram) &&
			!errors.Is(err, ErrInputParse) &&
			!errors.Is(err, ErrStepQuotaExceeded) {
			t.Fatalf("unexpected error class: %v", err)
		}
		if c := engine.Tape().Cursor(); c < 0 || c >= size {
			t.Fatalf("cursor %d escaped tape of size %d", c, size)
		}
		if engine.Tape().Len() != size {
			t.Fatalf("tape length changed to %d", engine.Tape().Len())
		}
	})
}
