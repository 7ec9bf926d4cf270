package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/browser"
	"github.com/ytmkit/ytmkit/internal/cookies"
	"github.com/ytmkit/ytmkit/internal/musicapi"
	"github.com/ytmkit/ytmkit/internal/repositories"
	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/source"
	"github.com/ytmkit/ytmkit/internal/stream"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Heavy dependencies (browser driver, stream client, song cache database)
// are constructed lazily on first use so commands that never touch them
// stay cheap.
type Runner struct {
	config  *shared.Config
	source  source.Plugin
	manager *cookies.Manager
	api     musicapi.API
	repo    *repositories.SongRepository
	logger  *log.Logger
	output  io.Writer

	closers []func()
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Source  source.Plugin
	Manager *cookies.Manager
	API     musicapi.API
	Repo    *repositories.SongRepository
	Logger  *log.Logger
	Output  io.Writer
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
		config:  opts.Config,
		source:  opts.Source,
		manager: opts.Manager,
		api:     opts.API,
		repo:    opts.Repo,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger replaces the runner's logger, for commands that must redirect
// log output away from the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Shutdown releases lazily constructed resources.
func (r *Runner) Shutdown() {
	for _, closeFn := range r.closers {
		closeFn()
	}
	r.closers = nil
}

// ensureAPI builds the music API client on first use.
func (r *Runner) ensureAPI() musicapi.API {
	if r.api == nil {
		r.api = musicapi.NewClient(r.config.API.ProxyURL, r.config.API.RequestsPerSecond, r.logger)
	}
	return r.api
}

// ensureManager builds the cookie manager on first use. A missing browser
// binary downgrades refresh capability instead of failing the command.
func (r *Runner) ensureManager() *cookies.Manager {
	if r.manager != nil {
		return r.manager
	}

	var driver cookies.Driver
	if d, err := browser.NewDriver(r.logger); err != nil {
		r.logger.Warn("browser automation unavailable", "error", err)
	} else {
		driver = d
	}

	cfg := r.config.Cookies
	r.manager = cookies.NewManager(cookies.Options{
		Path:         cfg.Path,
		Driver:       driver,
		Interval:     cfg.RefreshInterval.Std(),
		Lead:         cfg.RefreshLead.Std(),
		NavTimeout:   cfg.NavTimeout.Std(),
		LoginTimeout: cfg.LoginTimeout.Std(),
		LoginPoll:    cfg.LoginPoll.Std(),
		Headless:     cfg.Headless,
		AutoStart:    cfg.AutoRefresh,
		Logger:       r.logger,
	})
	r.closers = append(r.closers, r.manager.Close)

	return r.manager
}

// ensureRepo opens the song cache database on first use. Failures are
// logged and leave the cache disabled.
func (r *Runner) ensureRepo() *repositories.SongRepository {
	if r.repo != nil || r.config.Database.Path == "" {
		return r.repo
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("song cache unavailable", "error", err)
		return nil
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	repo := repositories.NewSongRepository(db)
	if err := repo.InitSchema(); err != nil {
		r.logger.Warn("song cache unavailable", "error", err)
		db.Close()
		return nil
	}

	r.repo = repo
	r.closers = append(r.closers, func() { db.Close() })
	return r.repo
}

// ensureSource builds and initializes the resolution source on first use.
func (r *Runner) ensureSource(ctx context.Context) error {
	if r.source == nil {
		var cache source.SongCacher
		if repo := r.ensureRepo(); repo != nil {
			cache = repositories.NewCacheAdapter(repo, r.logger)
		}

		cfg := r.config
		src, err := source.New(source.Options{
			Name:    cfg.Resolver.Name,
			API:     r.ensureAPI(),
			Manager: r.ensureManager(),
			ClientOptions: stream.ClientOptions{
				Timeout:      cfg.Client.Timeout.Std(),
				MaxIdleConns: cfg.Client.MaxIdleConns,
				MaxRedirects: cfg.Client.MaxRedirects,
				LocalAddr:    cfg.Client.LocalAddr,
				ProxyURL:     cfg.Client.ProxyURL,
			},
			MaxCollectionItems: cfg.Resolver.MaxCollectionItems,
			ConcurrentBatch:    cfg.Resolver.ConcurrentBatch,
			Cache:              cache,
			Logger:             r.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to build source: %w", err)
		}
		r.source = src
		r.closers = append(r.closers, src.Close)
	}

	return r.source.Init(ctx)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, resolveCommand, searchCommand, streamCommand, relatedCommand, exportCommand, cookiesCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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
