package model

import (
	"os"
	"path/filepath"
)

// LogLevel defines logging levels
type LogLevel string

const (
	// LogLevelDebug is the level for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the level for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is the level for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is the level for error messages
	LogLevelError LogLevel = "error"
)

// Config is the configuration structure for postman-rewrite
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error)
	LogLevel LogLevel
	// LogFile is the path to a rotated log file (empty for stdout only)
	LogFile string
	// HistoryDB is the path to the run history database (empty disables history)
	HistoryDB string
	// RulesFiles are the replacement rule files used when none are given on the command line
	RulesFiles []string
	// Pretty indents the written collection
	Pretty bool
}

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	return &Config{
		LogLevel:   LogLevelWarn,
		LogFile:    "",
		HistoryDB:  DataFilePath("history.db"),
		RulesFiles: []string{},
		Pretty:     false,
	}
}

// AddRulesFile appends a rules file to the default list
func (c *Config) AddRulesFile(path string) {
	for _, existing := range c.RulesFiles {
		if existing == path {
			return
		}
	}
	c.RulesFiles = append(c.RulesFiles, path)
}

// RemoveRulesFile removes a rules file from the default list
func (c *Config) RemoveRulesFile(path string) bool {
	for i, existing := range c.RulesFiles {
		if existing == path {
			c.RulesFiles = append(c.RulesFiles[:i], c.RulesFiles[i+1:]...)
			return true
		}
	}
	return false
}

// DataFilePath returns the path of a file inside the application directory
func DataFilePath(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, ".postman-rewrite", name)
}
