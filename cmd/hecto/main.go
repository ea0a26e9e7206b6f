// Package main is the entry point for hecto.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/hecto/internal/app"
	"github.com/dshills/hecto/internal/config"
	"github.com/dshills/hecto/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitRestore = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitError
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "hecto %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return exitError
	}

	logging := cfg.Logging()
	logger, err := app.OpenLogger(app.ParseLogLevel(logging.Level), logging.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer logger.Close()

	log := logger.WithField("session", uuid.NewString())
	log.Info("config sources: %s", strings.Join(cfg.Sources(), ", "))
	if path := cfg.FilePath(); path != "" {
		log.Info("loaded config from %s", path)
	}

	backend, err := newBackend(cfg.Terminal().Backend)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return exitError
	}

	// Validate has already checked the binding.
	quit, _ := cfg.QuitKey()

	application, err := app.New(backend, app.Options{
		QuitKey:       quit,
		Farewell:      cfg.Screen().Farewell,
		Echo:          cfg.Debug().Echo,
		MaxReadErrors: cfg.Terminal().MaxReadErrors,
		Logger:        log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return exitError
	}

	// Run returns only after the terminal has been handed back, so
	// anything printed from here on lands on a cooked terminal.
	err = application.Run()
	code := exitCode(err)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", describeError(err))
	}
	fmt.Fprintln(stdout, "Exiting...")
	return code
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath  string
	showVersion bool

	// overrides maps setting paths to flag values given explicitly.
	overrides map[string]any
}

// flagSettings maps flag names to the setting they override.
var flagSettings = map[string]string{
	"log-level": "logging.level",
	"log-file":  "logging.file",
	"backend":   "terminal.backend",
	"quit-key":  "keys.quit",
	"echo":      "debug.echo",
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("hecto", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Write logs to this file")
	backend := fs.String("backend", config.BackendTcell, "Terminal backend (tcell, bytes)")
	quitKey := fs.String("quit-key", "Ctrl+Q", "Key that ends the session")
	echo := fs.Bool("echo", false, "Print a line describing every key read")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "hecto - a minimal terminal editor\n\n")
		fmt.Fprintf(stderr, "Usage: hecto [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  hecto                       Read keys until Ctrl+Q\n")
		fmt.Fprintf(stderr, "  hecto -echo                 Describe every key pressed\n")
		fmt.Fprintf(stderr, "  hecto -backend bytes -echo  Describe every raw input byte\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return opts, err
	}

	values := map[string]any{
		"log-level": *logLevel,
		"log-file":  *logFile,
		"backend":   *backend,
		"quit-key":  *quitKey,
		"echo":      *echo,
	}
	opts.overrides = make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		if path, ok := flagSettings[f.Name]; ok {
			opts.overrides[path] = values[f.Name]
		}
	})

	return opts, nil
}

// loadConfig loads defaults, file and environment, then applies flags.
func loadConfig(opts cliOptions, extra ...config.Option) (*config.Config, error) {
	cfgOpts := extra
	if opts.configPath != "" {
		cfgOpts = append(cfgOpts, config.WithPath(opts.configPath))
	}

	cfg := config.New(cfgOpts...)
	for path, value := range opts.overrides {
		if err := cfg.Set(path, value); err != nil {
			return nil, fmt.Errorf("flag for %s: %w", path, err)
		}
	}
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBackend creates the named terminal backend.
func newBackend(name string) (terminal.Backend, error) {
	switch name {
	case config.BackendTcell:
		return terminal.NewTerminal()
	case config.BackendBytes:
		return terminal.NewByteTerminal(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// exitCode maps a Run result to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var re *terminal.RestoreError
	if errors.As(err, &re) {
		return exitRestore
	}
	return exitError
}

// describeError renders err for the user. Panic stack traces go to the
// log, not the terminal.
func describeError(err error) string {
	var pe *app.RecoveredPanicError
	if errors.As(err, &pe) {
		return fmt.Sprintf("panic: %v", pe.Value)
	}
	return err.Error()
}
