package port

import "github.com/haxorport/postman-rewrite/internal/domain/model"

// RulesRepository reads replacement rule files
type RulesRepository interface {
	// Load reads the given files and layers them left to right.
	// It returns nil when no path is given.
	Load(paths ...string) (*model.Replacements, error)
}
