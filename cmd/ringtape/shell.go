package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgomes/ringtape/bf"
)

// consoleHost binds the engine to a byte stream pair. Program tokens and
// integer answers share one token reader, as they do on a terminal.
type consoleHost struct {
	in     *bf.TokenInput
	out    *bufio.Writer
	retry  bool
	traced bool
}

func newConsoleHost(stdin io.Reader, stdout io.Writer) *consoleHost {
	return &consoleHost{
		in:  bf.NewTokenInput(stdin),
		out: bufio.NewWriter(stdout),
	}
}

func (h *consoleHost) EmitByte(b byte) error {
	return h.out.WriteByte(b)
}

// RequestInteger flushes pending output so prompts written by the program are
// visible, then reads one token. With retry set, unparsable tokens are
// reported and another token is read.
func (h *consoleHost) RequestInteger() (int, error) {
	for {
		if err := h.out.Flush(); err != nil {
			return 0, err
		}
		token, err := h.in.Token()
		if err != nil {
			return 0, &bf.InputParseError{Err: err}
		}
		v, err := bf.ParseInteger(token)
		if err == nil || !h.retry {
			return v, err
		}
		fmt.Fprintf(h.out, "%v\n?> ", err)
	}
}

func (h *consoleHost) trace(ev bf.TraceEvent) {
	fmt.Fprintln(h.out, bf.FormatTrace(ev))
	h.traced = true
}

func (h *consoleHost) engineConfig(base bf.Config, debug bool) bf.Config {
	cfg := base
	cfg.Input = h
	cfg.Output = h
	if debug {
		cfg.Output = nil
		cfg.Trace = h.trace
	}
	return cfg
}

func runFile(path string, base bf.Config, debug bool, stdin io.Reader, stdout io.Writer) error {
	source, err := readSourceFile(path)
	if err != nil {
		return err
	}

	host := newConsoleHost(stdin, stdout)
	engine, err := bf.NewEngine(host.engineConfig(base, debug))
	if err != nil {
		return err
	}

	runErr := engine.Parse(source)
	if err := host.out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("execution failed: %w", runErr)
	}
	return nil
}

func runLineShell(base bf.Config, debug bool, prompt string, stdin io.Reader, stdout, stderr io.Writer) error {
	host := newConsoleHost(stdin, stdout)
	host.retry = true
	engine, err := bf.NewEngine(host.engineConfig(base, debug))
	if err != nil {
		return err
	}

	for {
		fmt.Fprint(host.out, prompt)
		if err := host.out.Flush(); err != nil {
			return err
		}

		token, err := host.in.Token()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(host.out)
			return host.out.Flush()
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if shellCommands[token] {
			if quit := handleShellCommand(engine, token, host.out); quit {
				return host.out.Flush()
			}
			continue
		}

		host.traced = false
		runErr := engine.Parse(token)
		if !host.traced {
			fmt.Fprintln(host.out)
		}
		if err := host.out.Flush(); err != nil {
			return err
		}
		if runErr != nil {
			if errors.Is(runErr, io.EOF) {
				return nil
			}
			fmt.Fprintln(stderr, runErr)
		}
	}
}

// shellCommands lists the tokens the line shell treats as commands. Any
// other token, including one that starts with `:`, is a program.
var shellCommands = map[string]bool{
	":quit": true, ":q": true,
	":reset": true, ":r": true,
	":tape": true, ":t": true,
	":help": true, ":h": true,
}

// handleShellCommand runs a `:` command and reports whether the shell should
// exit.
func handleShellCommand(engine *bf.Engine, cmd string, out io.Writer) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":reset", ":r":
		engine.Reset()
		fmt.Fprintln(out, "tape reset")
	case ":tape", ":t":
		fmt.Fprintln(out, bf.FormatSnapshot(engine.Tape().Snapshot()))
	case ":help", ":h":
		fmt.Fprintln(out, "Shell commands:")
		fmt.Fprintln(out, "  :tape, :t    show the tape")
		fmt.Fprintln(out, "  :reset, :r   zero the tape")
		fmt.Fprintln(out, "  :help, :h    show this help")
		fmt.Fprintln(out, "  :quit, :q    exit")
	}
	return false
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
