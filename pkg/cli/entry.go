package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/overload/internal/config"
	"github.com/funvibe/overload/internal/history"
	"github.com/funvibe/overload/internal/pipeline"
	"github.com/funvibe/overload/internal/report"
	"github.com/funvibe/overload/internal/scenario"
	"github.com/funvibe/overload/internal/typesystem"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1 // a check missed its expectation
	ExitUsage  = 2 // bad arguments, unreadable scenario or database
)

const historyHelp = "history database (default $" + config.HistoryEnv + ")"

const usage = `Usage: overload <command> [flags] [args]

Commands:
  demo                     resolve the built-in overload example
  check [flags] PATH...    run scenario files (directories are searched for *.yaml)
  history [flags] [DB]     list recorded runs
  version                  print the version
  help                     show this message
`

// env carries the process environment so tests can run commands in-process.
type env struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
}

func (e *env) logger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
}

// Run executes the command line args (without the program name) and
// returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	e := &env{ctx: ctx, stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return ExitUsage
	}

	switch args[0] {
	case "demo":
		return handleDemo(e, args[1:])
	case "check":
		return handleCheck(e, args[1:])
	case "history":
		return handleHistory(e, args[1:])
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "overload %s\n", config.Version)
		return ExitOK
	case "help", "-help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return ExitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return ExitUsage
	}
}

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func colorFlag(fs *flag.FlagSet) *string {
	def := os.Getenv(config.ColorEnv)
	if def == "" {
		def = report.ColorAuto.String()
	}
	return fs.String("color", def, "color output: auto, always or never")
}

func newPrinter(e *env, color string) (*report.Printer, error) {
	mode, err := report.ParseColorMode(color)
	if err != nil {
		return nil, err
	}
	return report.NewPrinter(e.stdout, mode), nil
}

// DemoType is f: ((a, b, c | d | e) => f) & ((g, h) => i).
func DemoType() typesystem.Type {
	n := typesystem.Nominal
	return typesystem.NewIntersection(
		typesystem.Curry(n("a"), n("b"), typesystem.NewUnion(n("c"), n("d"), n("e")), n("f")),
		typesystem.Curry(n("g"), n("h"), n("i")),
	)
}

// DemoCalls are the argument lists resolved by the demo command.
func DemoCalls() [][]typesystem.Type {
	n := typesystem.Nominal
	return [][]typesystem.Type{
		{n("a"), n("h")},
		{n("a"), typesystem.NewIntersection(n("b"), n("x")), n("d")},
		{typesystem.NewUnion(n("a"), n("g")), typesystem.NewUnion(n("b"), n("h"))},
	}
}

func handleDemo(e *env, args []string) int {
	fs := newFlagSet(e, "demo")
	color := colorFlag(fs)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	printer, err := newPrinter(e, *color)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return ExitUsage
	}

	f := DemoType()
	for _, call := range DemoCalls() {
		result, err := typesystem.Resolve(f, call)
		printer.Resolution(f, call, result, err)
	}
	return ExitOK
}

func handleCheck(e *env, args []string) int {
	fs := newFlagSet(e, "check")
	dbPath := fs.String("db", os.Getenv(config.HistoryEnv), "record results in this "+historyHelp)
	color := colorFlag(fs)
	verbose := fs.Bool("v", false, "print every resolution trace and debug logs")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(e.stderr, "check: at least one scenario file or directory is required")
		return ExitUsage
	}

	logger := e.logger(*verbose)
	printer, err := newPrinter(e, *color)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return ExitUsage
	}
	printer.Verbose = *verbose

	files, err := scenario.Discover(fs.Args())
	if err != nil {
		logger.Error("discover failed", "err", err)
		return ExitUsage
	}
	if len(files) == 0 {
		fmt.Fprintln(e.stdout, "no scenario files found")
		return ExitOK
	}

	processors := []pipeline.Processor{
		pipeline.LoadProcessor{},
		pipeline.CheckProcessor{},
		pipeline.ReportProcessor{Printer: printer},
	}
	if *dbPath != "" {
		store, err := history.Open(e.ctx, *dbPath)
		if err != nil {
			logger.Error("history unavailable", "err", err)
			return ExitUsage
		}
		defer store.Close()
		processors = append(processors, pipeline.RecordProcessor{Store: store})
	}

	ctx := pipeline.New(processors...).Run(pipeline.NewPipelineContext(e.ctx, logger, files...))
	switch {
	case len(ctx.Errors) > 0:
		return ExitUsage
	case ctx.Failed():
		return ExitFailed
	default:
		return ExitOK
	}
}

func handleHistory(e *env, args []string) int {
	fs := newFlagSet(e, "history")
	limit := fs.Int("limit", 20, "maximum number of runs to list (0 lists all)")
	runID := fs.String("run", "", "show the recorded checks of one run")
	color := colorFlag(fs)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	dbPath := os.Getenv(config.HistoryEnv)
	if fs.NArg() > 0 {
		dbPath = fs.Arg(0)
	}
	if dbPath == "" {
		fmt.Fprintf(e.stderr, "history: a %s is required\n", historyHelp)
		return ExitUsage
	}
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Fprintf(e.stderr, "history: %v\n", err)
		return ExitUsage
	}

	printer, err := newPrinter(e, *color)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return ExitUsage
	}
	store, err := history.Open(e.ctx, dbPath)
	if err != nil {
		fmt.Fprintf(e.stderr, "history: %v\n", err)
		return ExitUsage
	}
	defer store.Close()

	if *runID != "" {
		entries, err := store.Entries(e.ctx, *runID)
		if err != nil {
			fmt.Fprintf(e.stderr, "history: %v\n", err)
			return ExitUsage
		}
		printer.Entries(entries)
		return ExitOK
	}

	runs, err := store.Runs(e.ctx, *limit)
	if err != nil {
		fmt.Fprintf(e.stderr, "history: %v\n", err)
		return ExitUsage
	}
	printer.Runs(runs)
	return ExitOK
}
