package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog *tasks.Catalog
	lookup  services.Lookup
	api     *services.APIService
	logger  *log.Logger
	output  io.Writer
	input   *bufio.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Catalog and Lookup are built from Config on first use when nil.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog *tasks.Catalog
	Lookup  services.Lookup
	API     *services.APIService
	Logger  *log.Logger
	Output  io.Writer
	Input   io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		lookup:  opts.Lookup,
		api:     opts.API,
		logger:  opts.Logger,
		output:  opts.Output,
		input:   bufio.NewReader(opts.Input),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		addCommand, addManualCommand, removeCommand, listCommand, findCommand, statsCommand, exportCommand, importCommand,
		serveCommand, tuiCommand, apiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Configure loads the config file, applies environment and flag overrides, and sets the log level.
//
// Precedence is flags, then environment, then the file, then the embedded defaults.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := shared.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if err := config.ApplyEnv(); err != nil {
		return ctx, err
	}

	if cmd.IsSet("library") {
		config.Library.Path = cmd.String("library")
	}
	if cmd.Bool("debug") {
		config.Log.Debug = true
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}

	level, err := shared.ParseLogLevel(config.Log.Level)
	if err != nil {
		return ctx, err
	}
	if config.Log.Debug {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	r.config = config
	r.logger.Debug("configuration loaded", "library", config.Library.Path, "lookup", config.Lookup.BaseURL)
	return ctx, nil
}

// openCatalog returns the injected catalog or builds and loads one from the current config.
func (r *Runner) openCatalog() (*tasks.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	if r.lookup == nil {
		r.lookup = services.NewOpenLibraryService(services.OpenLibraryOpts{
			BaseURL:       r.config.Lookup.BaseURL,
			UserAgent:     r.config.Lookup.UserAgent,
			BookTimeout:   r.config.Lookup.Timeout(),
			AuthorTimeout: r.config.Lookup.AuthorTimeout(),
			RateLimit:     r.config.Lookup.RequestsPerSecond,
		})
	}

	store := repositories.NewCatalogStore(r.config.Library.Path)
	catalog := tasks.NewCatalog(store, r.lookup, r.logger)
	if err := catalog.Open(); err != nil {
		return nil, err
	}

	r.catalog = catalog
	return catalog, nil
}

// SetLogger replaces the logger, e.g. when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
