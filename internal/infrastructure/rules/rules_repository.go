package rules

import (
	"reflect"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/port"
)

// RulesRepository is an implementation of port.RulesRepository reading
// JSON or YAML rule files
type RulesRepository struct{}

// NewRulesRepository creates a new RulesRepository instance
func NewRulesRepository() *RulesRepository {
	return &RulesRepository{}
}

// Load reads every file and layers them left to right. Header and path
// replacement lists accumulate; host and pathPrefix of a later file replace
// the ones of an earlier file.
func (r *RulesRepository) Load(paths ...string) (*model.Replacements, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &model.Replacements{}
	for _, path := range paths {
		layer, err := r.loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(merged, layer, mergo.WithOverride, mergo.WithAppendSlice, mergo.WithTransformers(substitutionTransformer{})); err != nil {
			return nil, errors.Wrapf(err, "merging rules file %s", path)
		}
	}
	return merged, nil
}

func (r *RulesRepository) loadFile(path string) (*model.Replacements, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading rules file %s", path)
	}

	var layer model.Replacements
	if err := v.Unmarshal(&layer); err != nil {
		return nil, errors.Wrapf(err, "parsing rules file %s", path)
	}
	return &layer, nil
}

// substitutionTransformer replaces a substitution as a whole so that an empty
// "after" in a later file is kept
type substitutionTransformer struct{}

func (substitutionTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf(&model.Substitution{}) {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if !src.IsNil() && dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

// Ensure RulesRepository implements port.RulesRepository
var _ port.RulesRepository = (*RulesRepository)(nil)
