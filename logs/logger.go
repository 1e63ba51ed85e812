// Package logs builds the structured loggers used by ringtape.
package logs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// DefaultLevel keeps normal runs quiet; engine diagnostics are debug level.
const DefaultLevel = slog.LevelWarn

// Options selects where log records go.
type Options struct {
	// Writer receives text records. Nil means stderr.
	Writer  io.Writer
	Level   string
	File    string
	Journal bool
}

// Logger couples a slog.Logger with the resources it owns.
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// Close releases log files opened by New.
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	l.closers = nil
	return errors.Join(errs...)
}

// ParseLevel accepts debug, info, warn or error (any case). Empty input
// yields DefaultLevel.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLevel, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLevel, fmt.Errorf("logs: invalid level %q", s)
	}
	return level, nil
}

// New fans records out to a terminal text handler, an optional log file and
// an optional systemd journal handler. A journal that cannot be reached is
// reported through the remaining handlers and skipped.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	logger := &Logger{}
	handlerOpts := &slog.HandlerOptions{Level: level}

	// local
	terminalHandler := slog.NewTextHandler(writer, handlerOpts)
	handlers := []slog.Handler{terminalHandler}

	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logs: open %s: %w", opts.File, err)
		}
		logger.closers = append(logger.closers, file)
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	// systemd journal
	if opts.Journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	logger.Logger = slog.New(slogmulti.Fanout(handlers...))
	return logger, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}
