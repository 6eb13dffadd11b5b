package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/mcncl/textfreq/internal/analyzer"
	"github.com/mcncl/textfreq/internal/config"
	"github.com/mcncl/textfreq/internal/errors"
	"github.com/mcncl/textfreq/internal/extractor"
	"github.com/mcncl/textfreq/internal/formatter"
	"github.com/mcncl/textfreq/internal/models"
	"github.com/mcncl/textfreq/internal/parser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON: {\"text\": \"...\"} or an array of paragraphs. If not specified, reads piped stdin." short:"i" type:"path"`
	Stops       string `help:"Path to a JSON stopword list: an array of strings or {\"stop\": \"...\"} objects." short:"s" type:"path"`
	Output      string `help:"Path to save the report. If not specified, writes to stdout." short:"o" type:"path"`
	Report      string `help:"Report type. Only 'freq' is supported." default:"freq"`
	Top         int    `help:"Number of words in each frequency table." short:"n" default:"20"`
	Format      string `help:"Report format (text, json, yaml)." short:"f" default:"text" enum:"text,json,yaml"`
	Config      string `help:"Path to a config file. Defaults to .textfreq.yml in the current or a parent directory." short:"c" type:"path"`
	JWCC        bool   `help:"Accept comments and trailing commas in input JSON." name:"jwcc"`
	Force       bool   `help:"Overwrite an existing output file without asking." short:"y"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *zap.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("textfreq"),
		kong.Description("Word frequency analysis for JSON text documents"),
		kong.UsageOnError(),
	)

	kctx, err := cli.Parse(os.Args[1:])
	cli.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("textfreq version %s\n", Version)
		return
	}

	// Nothing to analyze: show help, as with --help.
	if CLI.Input == "" && !CLI.Interactive && !stdinPiped() {
		_ = kctx.PrintUsage(false)
		return
	}

	cfg, err := loadConfig()
	if err == nil {
		logger := newLogger(os.Stderr, cfg.Dev.Debug)
		err = run(&Context{
			Config: cfg,
			Logger: logger,
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: textfreq --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with command-line flags
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		TopN:      CLI.Top,
		Report:    CLI.Report,
		Format:    CLI.Format,
		Stopwords: CLI.Stops,
		AllowJWCC: CLI.JWCC,
		Debug:     CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// newLogger returns a console logger tagged with a fresh run id. Only
// warnings are shown unless debug is set.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).With(zap.String("run", uuid.NewString()))
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	log := ctx.logger()
	opts := parser.Options{
		MaxDepth:  cfg.Parser.MaxDepth,
		AllowJWCC: cfg.Parser.AllowJWCC,
	}

	// 1. Parse JSON input
	parseStart := time.Now()
	root, err := parseInput(ctx, opts)
	if err != nil {
		return err
	}
	parseTime := time.Since(parseStart)
	log.Debug("parsed input", zap.Stringer("kind", root.Kind()), zap.Duration("duration", parseTime))

	// 2. Extract text blocks
	blocks := extractor.ExtractTextBlocks(root)
	if len(blocks) == 0 {
		return errors.NewExtractionError(`input JSON has no "text" field or array of paragraphs`, errors.ErrNoText)
	}
	log.Debug("extracted text blocks", zap.Int("blocks", len(blocks)))

	// 3. Load stopwords
	var stopwords []string
	if cfg.Stopwords != "" {
		sroot, err := parser.ParseFile(cfg.Stopwords, opts)
		if err != nil {
			return wrapParseError(cfg.Stopwords, err)
		}
		stopwords = extractor.ExtractStopwords(sroot)
		if len(stopwords) == 0 {
			log.Warn("stopword file lists no stopwords", zap.String("path", cfg.Stopwords))
		}
		log.Debug("loaded stopwords", zap.String("path", cfg.Stopwords), zap.Int("count", len(stopwords)))
	}

	// 4. Analyze text
	analyzeStart := time.Now()
	stats := analyzer.NewAnalyzerWithConfig(cfg).Analyze(blocks, stopwords)
	analyzeTime := time.Since(analyzeStart)
	log.Debug("analyzed text",
		zap.Int("words", stats.TotalWords),
		zap.Int("unique", stats.UniqueWords),
		zap.Int("sentences", stats.TotalSentences),
		zap.Duration("duration", analyzeTime),
	)

	// 5. Render and output the report
	report, err := renderReport(cfg, stats, parseTime, analyzeTime)
	if err != nil {
		return errors.NewOutputError("failed to render report", err)
	}
	return writeOutput(ctx, report)
}

// parseInput reads JSON from file, interactive terminal or piped stdin
func parseInput(ctx *Context, opts parser.Options) (models.Value, error) {
	var (
		root   models.Value
		err    error
		source = "stdin"
	)
	switch {
	case CLI.Input != "":
		source = CLI.Input
		root, err = parser.ParseFile(CLI.Input, opts)
	case CLI.Interactive:
		root, err = readInteractiveInput(ctx, opts)
	case ctx.Stdin == nil:
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	default:
		root, err = parser.ParseReader(ctx.Stdin, opts)
	}
	if err != nil {
		return nil, wrapParseError(source, err)
	}
	return root, nil
}

// wrapParseError turns a ParseError into a parsing AppError naming the
// source; other errors are already AppErrors and pass through.
func wrapParseError(source string, err error) error {
	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		return errors.NewParsingError(fmt.Sprintf("%s: %s", source, perr.Error()), perr)
	}
	return err
}

func renderReport(cfg *config.Config, stats models.TextStats, parseTime, analyzeTime time.Duration) (string, error) {
	f := formatter.NewFormatterWithConfig(cfg)
	if cfg.Output.Format != "text" {
		return f.Export(stats, cfg.TopN, cfg.Output.Format)
	}

	var b strings.Builder
	b.WriteString(f.FormatReport(stats, cfg.TopN))
	if cfg.Output.Timing {
		fmt.Fprintf(&b, "\nJSON parse time: %d ms\n", parseTime.Milliseconds())
		fmt.Fprintf(&b, "Text analysis time: %d ms\n", analyzeTime.Milliseconds())
	}
	return b.String(), nil
}

// writeOutput writes the report to file or stdout
func writeOutput(ctx *Context, report string) error {
	if CLI.Output != "" {
		if err := confirmOverwrite(ctx, CLI.Output); err != nil {
			return err
		}
		if err := os.WriteFile(CLI.Output, []byte(report), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(ctx.Stderr, "Report written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Fprint(ctx.Stdout, report); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// confirmOverwrite asks before replacing an existing file unless --force is set
func confirmOverwrite(ctx *Context, path string) error {
	if CLI.Force {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewOutputError(fmt.Sprintf("failed to check output file '%s'", path), err)
	}

	fmt.Fprintf(ctx.Stderr, "File %q already exists. Overwrite? [y/n]: ", path)
	answer, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
	if err != nil && (err != io.EOF || answer == "") {
		return errors.NewOutputError("failed to read overwrite confirmation", errors.ErrOverwriteDeclined)
	}
	switch strings.TrimSpace(answer) {
	case "y", "Y":
		return nil
	}
	return errors.NewOutputError(fmt.Sprintf("overwrite of '%s' cancelled", path), errors.ErrOverwriteDeclined)
}

func stdinPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context, opts parser.Options) (models.Value, error) {
	fmt.Fprintln(ctx.Stderr, "textfreq Interactive Mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing JSON...")
	return parser.ParseWithOptions([]byte(jsonData), opts)
}
