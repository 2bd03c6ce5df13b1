package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mediadirect/mediadirect/internal/blob"
	"github.com/mediadirect/mediadirect/internal/collections"
	"github.com/mediadirect/mediadirect/internal/notify"
	"github.com/mediadirect/mediadirect/internal/repositories"
	"github.com/mediadirect/mediadirect/internal/services"
	"github.com/mediadirect/mediadirect/internal/shared"
	"github.com/mediadirect/mediadirect/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	host   services.HostService
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Host   services.HostService
	Logger *log.Logger
	Output io.Writer
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

	return &Runner{
		config: opts.Config,
		host:   opts.Host,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, migrateCommand, moderateCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves configuration for one command invocation: the --config
// flag's file when it exists, the Runner's config otherwise.
func (r *Runner) loadConfig(path string) *shared.Config {
	if path == "" {
		return r.config
	}

	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using current settings", "path", path, "error", err)
		return r.config
	}
	return config
}

// hostService returns the host client for one invocation, rebuilding it when
// the command's config differs from the Runner's.
func (r *Runner) hostService(config *shared.Config) services.HostService {
	if config == r.config && r.host != nil {
		return r.host
	}
	return services.NewMediaHostService(config.Host.BaseURL, config.Host.SessionToken, config.Host.RateLimit)
}

func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// buildEngines wires the repositories, blob store, notifier, and host client
// into the two synchronization engines.
func (r *Runner) buildEngines(config *shared.Config, db *sql.DB) (*tasks.MigrationEngine, *tasks.ModerationEngine, error) {
	blobs, err := blob.NewFileStore(config.Blobs.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open blob store: %w", err)
	}

	host := r.hostService(config)
	notifier := notify.NewSMTPNotifier(config.Email.SMTPAddr, config.Email.From, r.logger)
	manager := collections.NewManager(host, r.logger)

	submissions := repositories.NewSubmissionRepository(db)
	assignments := repositories.NewAssignmentRepository(db)
	assets := repositories.NewAssetRepository(db)

	migration := tasks.NewMigrationEngine(host, submissions, assignments, assets, blobs, notifier, r.logger)
	moderation := tasks.NewModerationEngine(host, manager, submissions, assignments, assets, notifier, config.Email.ModerationEmail, r.logger)

	return migration, moderation, nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
