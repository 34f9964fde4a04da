package service

import (
	"fmt"
	"strconv"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/port"
)

// ConfigService is a service for managing configuration
type ConfigService struct {
	configRepo port.ConfigRepository
	logger     port.Logger
}

// NewConfigService creates a new ConfigService instance
func NewConfigService(configRepo port.ConfigRepository, logger port.Logger) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		logger:     logger,
	}
}

// LoadConfig loads configuration from a file
func (s *ConfigService) LoadConfig(configPath string) (*model.Config, error) {
	// If configPath is empty, use the default path
	if configPath == "" {
		var err error
		configPath, err = s.configRepo.GetDefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default path: %v", err)
		}
	}

	config, err := s.configRepo.Load(configPath)
	if err != nil {
		s.logger.Warn("Failed to load configuration from %s: %v", configPath, err)
		// Return default configuration if loading fails
		return model.NewConfig(), nil
	}

	s.logger.Debug("Configuration loaded from %s", configPath)

	return config, nil
}

// SaveConfig saves configuration to a file
func (s *ConfigService) SaveConfig(config *model.Config, configPath string) error {
	// If configPath is empty, use the default path
	if configPath == "" {
		var err error
		configPath, err = s.configRepo.GetDefaultPath()
		if err != nil {
			return fmt.Errorf("failed to get default path: %v", err)
		}
	}

	if err := s.configRepo.Save(config, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %v", err)
	}

	s.logger.Info("Configuration saved to %s", configPath)

	return nil
}

// Set changes a single configuration value by key
func (s *ConfigService) Set(config *model.Config, key, value string) error {
	switch key {
	case "log_level":
		s.SetLogLevel(config, value)
	case "log_file":
		s.SetLogFile(config, value)
	case "history_db":
		s.SetHistoryDB(config, value)
	case "pretty":
		pretty, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("pretty must be true or false: %v", err)
		}
		config.Pretty = pretty
	default:
		return fmt.Errorf("invalid configuration key: %s", key)
	}
	return nil
}

// SetLogLevel sets the log level
func (s *ConfigService) SetLogLevel(config *model.Config, logLevel string) {
	config.LogLevel = model.LogLevel(logLevel)
}

// SetLogFile sets the log file
func (s *ConfigService) SetLogFile(config *model.Config, logFile string) {
	config.LogFile = logFile
}

// SetHistoryDB sets the history database path
func (s *ConfigService) SetHistoryDB(config *model.Config, historyDB string) {
	config.HistoryDB = historyDB
}

// AddRulesFile adds a default rules file
func (s *ConfigService) AddRulesFile(config *model.Config, path string) {
	config.AddRulesFile(path)
}

// RemoveRulesFile removes a default rules file
func (s *ConfigService) RemoveRulesFile(config *model.Config, path string) bool {
	return config.RemoveRulesFile(path)
}
