package model

// HeaderReplacement overwrites the value of every header named Name and
// optionally appends a new header
type HeaderReplacement struct {
	// Name is the header name, matched case-insensitively
	Name string `json:"name" mapstructure:"name"`
	// NewValue replaces the value of every matching header
	NewValue string `json:"newValue" mapstructure:"newValue"`
	// AddValue, when set, is appended as a new header named Name
	AddValue string `json:"addValue,omitempty" mapstructure:"addValue"`
}

// Substitution replaces the first literal occurrence of Before with After
type Substitution struct {
	Before string `json:"before" mapstructure:"before"`
	After  string `json:"after" mapstructure:"after"`
}

// PathReplacement replaces a path variable token. Before is matched as one or
// more whole path segments.
type PathReplacement struct {
	Before string `json:"before" mapstructure:"before"`
	After  string `json:"after" mapstructure:"after"`
}

// Replacements is a rule-set. Every category is optional.
type Replacements struct {
	Headers          []HeaderReplacement `json:"headers,omitempty" mapstructure:"headers"`
	Host             *Substitution       `json:"host,omitempty" mapstructure:"host"`
	PathPrefix       *Substitution       `json:"pathPrefix,omitempty" mapstructure:"pathPrefix"`
	PathReplacements []PathReplacement   `json:"pathReplacements,omitempty" mapstructure:"pathReplacements"`
}

// Pass names, in the order they are applied
const (
	PassHeaders          = "headers"
	PassHost             = "host"
	PassPathPrefix       = "pathPrefix"
	PassPathReplacements = "pathReplacements"
)

// Passes returns the names of the categories present in the rule-set, in
// application order
func (r *Replacements) Passes() []string {
	if r == nil {
		return nil
	}
	var passes []string
	if len(r.Headers) > 0 {
		passes = append(passes, PassHeaders)
	}
	if r.Host != nil {
		passes = append(passes, PassHost)
	}
	if r.PathPrefix != nil {
		passes = append(passes, PassPathPrefix)
	}
	if len(r.PathReplacements) > 0 {
		passes = append(passes, PassPathReplacements)
	}
	return passes
}

// IsEmpty reports whether the rule-set has no category
func (r *Replacements) IsEmpty() bool {
	return len(r.Passes()) == 0
}
