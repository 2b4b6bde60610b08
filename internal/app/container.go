package app

import (
	"context"

	"github.com/doeshing/shai-term/internal/application/assistant"
	"github.com/doeshing/shai-term/internal/application/doctor"
	"github.com/doeshing/shai-term/internal/infrastructure/ai"
	"github.com/doeshing/shai-term/internal/infrastructure/config"
	contextcollector "github.com/doeshing/shai-term/internal/infrastructure/context"
	"github.com/doeshing/shai-term/internal/infrastructure/executor"
	"github.com/doeshing/shai-term/internal/infrastructure/history"
	"github.com/doeshing/shai-term/internal/infrastructure/safeguard"
	"github.com/doeshing/shai-term/internal/infrastructure/session"
	"github.com/doeshing/shai-term/internal/infrastructure/usage"
	"github.com/doeshing/shai-term/internal/pkg/filesystem"
	"github.com/doeshing/shai-term/internal/pkg/logger"
	"github.com/doeshing/shai-term/internal/ports"
)

// Options selects how the container is built.
type Options struct {
	Verbose bool
	LogFile string
	// ConfigPath overrides the config file location.
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Assistant    *assistant.Service
	Doctor       *doctor.Service
	ConfigLoader *config.FileLoader
	Sessions     *session.Manager
	Usage        *usage.FileStore
	CommandLog   ports.CommandLog
	Executor     ports.CommandExecutor
	Logger       *logger.ZapLogger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.New(opts.Verbose, opts.LogFile)

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	matcher, err := safeguard.LoadMatcher(cfg.Safeguard.RulesFile)
	if err != nil {
		log.Warn("user safeguard rules ignored", map[string]interface{}{
			"path":  cfg.Safeguard.RulesFile,
			"error": err.Error(),
		})
		matcher = safeguard.NewMatcher()
	}

	historyPath := history.DefaultPath()
	if cfg.History.Path != "" {
		historyPath = filesystem.ResolvePath(cfg.History.Path)
	}
	commandLog := history.Open(historyPath, log)

	usageStore := usage.NewFileStore(usage.DefaultPath(), log)
	sessions := session.NewManager(session.Options{}, log)
	collector := contextcollector.NewCollector(sessions)

	service, err := assistant.New(cfg, assistant.Dependencies{
		ConfigStore: cfgLoader,
		Clients:     ai.NewFactory(usageStore, log),
		Safeguard:   matcher,
		Context:     collector,
		CommandLog:  commandLog,
		Usage:       usageStore,
		Cwd:         sessions,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Assistant:    service,
		Doctor: &doctor.Service{
			ConfigStore:      cfgLoader,
			Safeguard:        matcher,
			ContextCollector: collector,
			CommandLog:       commandLog,
			Shell:            session.DefaultShell(),
		},
		ConfigLoader: cfgLoader,
		Sessions:     sessions,
		Usage:        usageStore,
		CommandLog:   commandLog,
		Executor:     executor.NewLocalExecutor("", ""),
		Logger:       log,
	}, nil
}

// Close releases the shell session and flushes logs.
func (c *Container) Close() error {
	err := c.Sessions.Close()
	_ = c.Logger.Sync()
	return err
}
