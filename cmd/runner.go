package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelyf/internal/filter"
	"github.com/desertthunder/tunelyf/internal/services"
	"github.com/desertthunder/tunelyf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	policies   filter.Policies
	logger     *log.Logger
	output     io.Writer
	closer     io.Closer

	// configured loggers are built in setup from [shared.LogConfig]
	configureLogger bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from ConfigPath when the file exists. A nil Catalog is built from the config.
// A nil Logger is replaced in setup by one built from the config's [log] section.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Policies   filter.Policies
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	configureLogger := opts.Logger == nil
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		policies:   opts.Policies,
		logger:     opts.Logger,
		output:     opts.Output,

		configureLogger: configureLogger,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, searchCommand, trendingCommand, streamCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// setup resolves configuration, logging, the catalog client and the filter policies.
//
// It runs before every command; dependencies supplied through [RunnerOpts] are kept.
func (r *Runner) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.config == nil {
		config, err := r.loadConfig()
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	if cmd.Bool("verbose") {
		r.config.Log.Level = "debug"
	}

	if r.configureLogger {
		logger, closer, err := shared.NewConfiguredLogger(r.config.Log)
		if err != nil {
			return ctx, err
		}
		r.logger = logger
		r.closer = closer
	} else {
		level, err := shared.ParseLevel(r.config.Log.Level)
		if err != nil {
			return ctx, err
		}
		shared.SetLogLevel(r.logger, level)
	}

	if r.catalog == nil {
		r.catalog = services.NewAudiusService(services.AudiusOptsFromConfig(r.config.Upstream))
	}

	if r.policies == nil {
		policies, err := filter.NewPolicies(r.config.Filter)
		if err != nil {
			return ctx, err
		}
		r.policies = policies
	}

	return ctx, nil
}

// loadConfig reads the config file when present, then applies environment overrides.
func (r *Runner) loadConfig() (*shared.Config, error) {
	config := shared.DefaultConfig()
	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			loaded, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
			}
			config = loaded
		} else {
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		}
	}

	if err := shared.ApplyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// teardown flushes the log file, if any.
func (r *Runner) teardown(ctx context.Context, cmd *cli.Command) error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
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
