package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/ringtape/bf"
	"github.com/mgomes/ringtape/logs"
)

const version = "v0.1.0"

func main() {
	if err := runCLI(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

type options struct {
	stackSize   int
	sourceFile  string
	interactive bool
	debug       bool
	plain       bool
	configPath  string
	logLevel    string
	help        bool
	set         map[string]bool
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	prog := "ringtape"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	opts, err := parseOptions(args)
	if err != nil {
		printUsage(stderr, prog)
		return err
	}
	if opts.help {
		printUsage(stdout, prog)
		return nil
	}
	if opts.sourceFile == "" && !opts.interactive {
		printUsage(stderr, prog)
		return newUsageError("a source file or --cli is required")
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Options{
		Writer:  stderr,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Journal: cfg.Log.Journal,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	engineCfg := bf.Config{
		TapeSize:  cfg.TapeSize,
		StepQuota: cfg.StepQuota,
		Logger:    logger.Logger,
	}

	if opts.sourceFile != "" {
		return runFile(opts.sourceFile, engineCfg, opts.debug, stdin, stdout)
	}
	if !cfg.REPL.Plain && isTerminal(stdin) && isTerminal(stdout) {
		logger.Debug("starting tui", "debug", opts.debug)
		// stderr shares the alt screen; only a log file or the journal may
		// receive records while the TUI is up.
		if cfg.Log.File == "" && !cfg.Log.Journal {
			engineCfg.Logger = logs.Discard().Logger
		}
		return runREPL(engineCfg, opts.debug)
	}
	return runLineShell(engineCfg, opts.debug, cfg.REPL.Prompt, stdin, stdout, stderr)
}

func parseOptions(args []string) (options, error) {
	opts := options{set: make(map[string]bool)}
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			opts.help = true
			return opts, nil
		}
	}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		opts.sourceFile = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("ringtape", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	fs.IntVar(&opts.stackSize, "s", bf.DefaultTapeSize, "tape size")
	fs.IntVar(&opts.stackSize, "stack", bf.DefaultTapeSize, "tape size")
	fs.StringVar(&opts.sourceFile, "f", opts.sourceFile, "source file")
	fs.StringVar(&opts.sourceFile, "file", opts.sourceFile, "source file")
	fs.BoolVar(&opts.interactive, "c", false, "interactive shell")
	fs.BoolVar(&opts.interactive, "cli", false, "interactive shell")
	fs.BoolVar(&opts.debug, "d", false, "trace every instruction")
	fs.BoolVar(&opts.debug, "debug", false, "trace every instruction")
	fs.BoolVar(&opts.plain, "plain", false, "use the plain line shell")
	fs.StringVar(&opts.configPath, "config", "", "config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level")
	if err := fs.Parse(args); err != nil {
		return opts, newUsageError("%v", err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return opts, newUsageError("unexpected argument %q", rest[0])
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s", "stack":
			opts.set["stack"] = true
		case "plain":
			opts.set["plain"] = true
		case "log-level":
			opts.set["log-level"] = true
		}
	})
	if opts.set["stack"] && (opts.stackSize < 1 || opts.stackSize > bf.MaxTapeSize) {
		return opts, newUsageError("stack size must be between 1 and %d, got %d", bf.MaxTapeSize, opts.stackSize)
	}
	if opts.debug {
		opts.interactive = true
	}
	return opts, nil
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [options] [file]\n", prog)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -s, --stack <size>   set tape size (default 16)")
	fmt.Fprintln(w, "  -f, --file <path>    run a source file")
	fmt.Fprintln(w, "  -c, --cli            start the interactive shell")
	fmt.Fprintln(w, "  -d, --debug          interactive shell with an instruction trace")
	fmt.Fprintln(w, "      --plain          use the line shell even on a terminal")
	fmt.Fprintln(w, "      --config <path>  read settings from a TOML file")
	fmt.Fprintln(w, "      --log-level <l>  debug, info, warn or error")
	fmt.Fprintln(w, "  -h, --help           show help")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

type usageError struct {
	msg string
}

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func (e *usageError) Error() string {
	return "usage error: " + e.msg
}

type fileAccessError struct {
	Path string
	Err  error
}

func (e *fileAccessError) Error() string {
	return fmt.Sprintf("cannot read source file %q: %v", e.Path, e.Err)
}

func (e *fileAccessError) Unwrap() error {
	return e.Err
}

func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// readSourceFile returns the file contents with line breaks removed, so a
// program split over several lines runs as one.
func readSourceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &fileAccessError{Path: path, Err: err}
	}
	return strings.ReplaceAll(string(data), "\n", ""), nil
}
