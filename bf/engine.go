package bf

import (
	"fmt"
	"log/slog"
)

// Config controls tape size, host bindings and execution bounds.
type Config struct {
	TapeSize  int
	StepQuota int
	Output    Output
	Input     Input
	Trace     TraceFunc
	Logger    *slog.Logger
}

// Engine owns one tape and runs programs against it. An Engine is not safe
// for concurrent use; independent engines share nothing.
type Engine struct {
	config Config
	tape   *Tape
	log    *slog.Logger
}

// NewEngine constructs an Engine, filling zero-valued config fields with
// defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.TapeSize == 0 {
		cfg.TapeSize = DefaultTapeSize
	}
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("bf: step quota cannot be negative, got %d", cfg.StepQuota)
	}
	if cfg.Output == nil {
		cfg.Output = discardOutput{}
	}
	if cfg.Input == nil {
		cfg.Input = missingInput{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	tape, err := NewTape(cfg.TapeSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config: cfg,
		tape:   tape,
		log:    cfg.Logger.With("component", "bf"),
	}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse scans source left to right and executes every instruction in it.
// The tape keeps whatever state the program leaves behind, including when
// Parse fails part way through.
func (e *Engine) Parse(source string) error {
	e.log.Debug("parse start", "bytes", len(source), "cursor", e.tape.Cursor())

	exec := newExecution(e, source)
	err := exec.run()
	if err != nil {
		e.log.Debug("parse failed", "pc", exec.pc, "steps", exec.steps, "error", err)
		return err
	}

	if open := exec.openLoops(); open > 0 {
		e.log.Debug("parse left loops open", "open", open)
	}
	e.log.Debug("parse done", "steps", exec.steps, "cursor", e.tape.Cursor())
	return nil
}

// Reset zeroes the tape and returns the cursor to the first cell.
func (e *Engine) Reset() {
	e.tape.Reset()
	e.log.Debug("tape reset")
}

// Tape exposes the engine's tape for inspection.
func (e *Engine) Tape() *Tape {
	return e.tape
}

// SetTrace replaces the trace hook; nil disables tracing.
func (e *Engine) SetTrace(fn TraceFunc) {
	e.config.Trace = fn
}

// ConfigSummary provides a human-readable description of the engine limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("tape=%d steps=%d trace=%t", e.config.TapeSize, e.config.StepQuota, e.config.Trace != nil)
}
