package main

import (
	"chai/internal/conformance"
	"chai/internal/evaluator"
	"chai/internal/history"
	"chai/internal/lexer"
	"chai/internal/object"
	"chai/internal/parser"
	"chai/internal/repl"
	"chai/internal/util"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultRootPath = "."
	historyTimeout  = 5 * time.Second
)

var (
	// Version is the current version of the chai binary, set at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	rootPath    string
	debugAST    bool
	configPath  string
	historyDSN  string
	showHistory int
	checkFile   string
	prompt      string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a chai.toml configuration file")
	// evaluator config
	flag.StringVar(&rootPath, "root", DefaultRootPath, "Directory relative program paths are resolved against")
	// parser config
	flag.BoolVar(&debugAST, "debug-ast", false, "Render the AST as a JSON file")
	// run history
	flag.StringVar(&historyDSN, "history-db", "", "Record runs in this database (sqlite3 path, mysql:// or postgres:// DSN)")
	flag.IntVar(&showHistory, "history", 0, "List the given number of most recent runs and exit")
	// conformance
	flag.StringVar(&checkFile, "check", "", "Run the cases of a YAML conformance file and exit")
	// repl
	flag.StringVar(&prompt, "prompt", repl.PROMPT, "REPL prompt")
	// log config
	flag.StringVar(&logLevel, "log-level", "NONE", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	config, configFile, err := loadConfiguration()

	// Creates a new Logger that uses a JSONHandler to write to the log writer
	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)
	configFile.Log()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch {
	case showHistory > 0:
		os.Exit(listHistory(ctx, config, showHistory))
	case checkFile != "":
		os.Exit(runConformance(checkFile))
	case flag.NArg() > 0:
		os.Exit(runFile(ctx, config, flag.Arg(0)))
	default:
		r := repl.New(repl.NewTerminal(), os.Stdout, config.Prompt)
		if err := r.Start(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// loadConfiguration builds the configuration from flags and the optional
// TOML file. Flags given on the command line win over the file.
func loadConfiguration() (util.Configuration, util.ConfigFile, error) {
	config := util.Configuration{
		Version:    Version,
		BuildDate:  BuildDate,
		Commit:     Commit,
		RootPath:   rootPath,
		DebugAST:   debugAST,
		ChaiHome:   os.Getenv("CHAI_HOME"),
		LogLevel:   logLevel,
		LogFile:    logFile,
		HistoryDSN: historyDSN,
		Prompt:     prompt,
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	path, optional := configPath, false
	if path == "" {
		path, optional = util.DefaultConfigPath(config.ChaiHome), true
	}
	if path == "" {
		return config, util.ConfigFile{}, nil
	}
	file, err := util.LoadConfigFile(&config, path, optional, explicit)
	return config, file, err
}

func runFile(ctx context.Context, config util.Configuration, fileName string) int {
	path := fileName
	if !filepath.IsAbs(path) {
		path = filepath.Join(config.RootPath, path)
	}

	var pending *history.Pending
	if config.HistoryDSN != "" {
		pending = history.OpenAsync(ctx, config.HistoryDSN)
	}

	started := time.Now()
	err := execute(config, path)
	if pending != nil {
		recordRun(ctx, pending, history.NewRun(fileName, started, err))
	}

	if err != nil {
		return 1
	}
	return 0
}

// execute parses and runs the program at path, reporting any failure on
// stderr.
func execute(config util.Configuration, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read '%s': %v\n", path, err)
		return err
	}
	source := string(src)

	slog.Info("running program", slog.String("path", path))

	p := parser.New(lexer.New(source), source)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		fmt.Fprintf(os.Stderr, "%s\n", p.ErrorDetails())
		for _, msg := range p.Errors()[1:] {
			fmt.Fprintf(os.Stderr, "%s\n", msg)
		}
		return errors.New(strings.Join(p.Errors(), "\n"))
	}

	if config.DebugAST {
		if err := parser.WriteASTToJSON(program, path+".ast.json"); err != nil {
			slog.Warn("failed to write AST", slog.Any("error", err))
		}
	}

	e := evaluator.New(os.Stdout, stdinReader())
	err = e.Run(program)

	var rtErr *object.RuntimeError
	switch {
	case errors.As(err, &rtErr):
		fmt.Fprint(os.Stderr, object.RenderStacktrace(rtErr, source, path))
		fmt.Fprintln(os.Stderr)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

// stdinReader serves the input built-in, with line editing when stdin is a
// terminal.
func stdinReader() evaluator.LineReader {
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return repl.NewTerminal()
	}
	return evaluator.NewLineReader(os.Stdin, os.Stdout)
}

func recordRun(ctx context.Context, pending *history.Pending, run history.Run) {
	store, err := pending.Wait(historyTimeout)
	if err != nil {
		slog.Warn("run history unavailable", slog.Any("error", err))
		return
	}
	defer store.Close()

	if err := store.Record(ctx, run); err != nil {
		slog.Warn("failed to record run", slog.Any("error", err))
	}
}

func listHistory(ctx context.Context, config util.Configuration, limit int) int {
	if config.HistoryDSN == "" {
		fmt.Fprintln(os.Stderr, "no history database configured: use -history-db or history_dsn in chai.toml")
		return 1
	}
	store, err := history.Open(ctx, config.HistoryDSN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer store.Close()

	runs, err := store.Recent(ctx, limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, run := range runs {
		fmt.Println(run.Format())
	}
	return 0
}

func runConformance(path string) int {
	cases, err := conformance.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	failed := 0
	for _, result := range conformance.RunAll(cases) {
		if result.Passed() {
			fmt.Printf("PASS  %s\n", result.Case.Name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s: %s\n", result.Case.Name, result.Describe())
	}
	fmt.Printf("%d passed, %d failed\n", len(cases)-failed, failed)

	if failed > 0 {
		return 1
	}
	return 0
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("chai version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: chai [options] [filename]

Options:
  -root <path>         Resolve relative program paths against this directory. Default is '.'
  -config <path>       Read settings from a TOML file. Default is $CHAI_HOME/chai.toml when present.
  -debug-ast           Write the program tree next to the program as <file>.ast.json.
  -history-db <dsn>    Record every run in a database: a sqlite3 path, mysql://... or postgres://...
  -history <n>         List the n most recent recorded runs and exit.
  -check <file.yaml>   Run the cases of a conformance file and exit.
  -prompt <text>       REPL prompt. Default is '>> '.
  -help                Display this help information and exit.
  -version             Display version information and exit.
  -log-level <level>   Set the log level: debug, info, warn, error, none. Default is 'none'.
  -log-file <path>     Specify a log file to write logs. Default is stderr.

Details:
This is the Chai programming language. Without a filename an interactive
session is started; a line ending in ':' continues until an empty line.

Examples:
  chai                              Start an interactive session
  chai hello.chai                   Execute the provided Chai file
  chai -history-db runs.db a.chai   Execute a file and record the run
  chai -check cases.yaml            Run conformance cases

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
