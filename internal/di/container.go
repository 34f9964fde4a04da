package di

import (
	"os"

	"github.com/haxorport/postman-rewrite/internal/application/service"
	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/port"
	domainservice "github.com/haxorport/postman-rewrite/internal/domain/service"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/collection"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/config"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/history"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/logger"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/rules"
)

// Container is a container for dependency injection
type Container struct {
	// Logger
	Logger *logger.Logger

	// Repositories
	ConfigRepository     *config.ConfigRepository
	CollectionRepository *collection.CollectionRepository
	RulesRepository      *rules.RulesRepository
	HistoryRepository    port.HistoryRepository

	// Domain
	Engine domainservice.ReplacementEngine

	// Services
	ConfigService      *service.ConfigService
	ReplacementService *service.ReplacementService

	// Config
	Config *model.Config
}

// NewContainer creates a new Container instance
func NewContainer() *Container {
	return &Container{}
}

// Initialize initializes the container
func (c *Container) Initialize(configPath string) error {
	// Initialize logger
	c.Logger = logger.NewLogger(os.Stdout, "info")

	// Initialize config repository and service
	c.ConfigRepository = config.NewConfigRepository()
	c.ConfigService = service.NewConfigService(c.ConfigRepository, c.Logger)

	// Load configuration
	var err error
	c.Config, err = c.ConfigService.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Set logger level based on configuration
	c.Logger.SetLevel(string(c.Config.LogLevel))

	// If log file is specified, write to it as well as to the terminal
	if c.Config.LogFile != "" {
		if err := c.Logger.SetFile(c.Config.LogFile); err != nil {
			c.Logger.Error("Failed to open log file: %v", err)
		} else {
			c.Logger.Debug("Logs will also be written to file: %s", c.Config.LogFile)
		}
	}

	// History is optional, a broken database must not block rewriting
	c.HistoryRepository = history.NewNopRepository()
	if c.Config.HistoryDB != "" {
		historyRepo, err := history.NewHistoryRepository(c.Config.HistoryDB)
		if err != nil {
			c.Logger.Warn("History disabled: %v", err)
		} else {
			c.HistoryRepository = historyRepo
		}
	}

	c.CollectionRepository = collection.NewCollectionRepository()
	c.RulesRepository = rules.NewRulesRepository()
	c.Engine = domainservice.NewReplacementEngine()

	c.ReplacementService = service.NewReplacementService(
		c.CollectionRepository,
		c.RulesRepository,
		c.HistoryRepository,
		c.Engine,
		c.Config,
		c.Logger,
	)

	return nil
}

// Close closes all resources
func (c *Container) Close() {
	if c.HistoryRepository != nil {
		if err := c.HistoryRepository.Close(); err != nil && c.Logger != nil {
			c.Logger.Warn("Failed to close history: %v", err)
		}
	}

	// Close logger
	if c.Logger != nil {
		c.Logger.Close()
	}
}
