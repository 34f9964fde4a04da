package service

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/textutil"
)

// ErrMalformedRequest is returned when a request lacks a field a pass needs
var ErrMalformedRequest = errors.New("malformed request")

// ReplacementEngine rewrites the requests of a collection in place
type ReplacementEngine interface {
	// PerformReplacements applies every category present in replacements to
	// collection, in the order headers, host, path prefix, path variables.
	// A nil rule-set leaves the collection untouched. On error the passes
	// already applied stay applied.
	PerformReplacements(collection *model.Collection, replacements *model.Replacements) error
}

// replacementEngine is an implementation of ReplacementEngine
type replacementEngine struct{}

// NewReplacementEngine creates a new ReplacementEngine instance
func NewReplacementEngine() ReplacementEngine {
	return &replacementEngine{}
}

// requestPass rewrites a single request
type requestPass func(request *model.Request) error

func (e *replacementEngine) PerformReplacements(collection *model.Collection, replacements *model.Replacements) error {
	if collection == nil || replacements == nil {
		return nil
	}

	if len(replacements.Headers) > 0 {
		if err := apply(collection, model.PassHeaders, headersPass(replacements.Headers)); err != nil {
			return err
		}
	}
	if replacements.Host != nil {
		if err := apply(collection, model.PassHost, hostPass(*replacements.Host)); err != nil {
			return err
		}
	}
	if replacements.PathPrefix != nil {
		if err := apply(collection, model.PassPathPrefix, pathPrefixPass(*replacements.PathPrefix)); err != nil {
			return err
		}
	}
	if len(replacements.PathReplacements) > 0 {
		if err := apply(collection, model.PassPathReplacements, pathVariablesPass(replacements.PathReplacements)); err != nil {
			return err
		}
	}
	return nil
}

// apply runs pass on every request of the collection, folders included
func apply(collection *model.Collection, name string, pass requestPass) error {
	return collection.Walk(func(path string, request *model.Request) error {
		if err := pass(request); err != nil {
			return errors.Wrapf(err, "%s pass: %s (%q)", name, path, request.Name)
		}
		return nil
	})
}

func headersPass(rules []model.HeaderReplacement) requestPass {
	return func(request *model.Request) error {
		payload, err := payloadOf(request)
		if err != nil {
			return err
		}
		for _, rule := range rules {
			payload.Header = replaceHeader(payload.Header, rule)
		}
		return nil
	}
}

// replaceHeader overwrites every header matching rule.Name and appends the
// added header, if any, even when nothing matched
func replaceHeader(headers []model.Header, rule model.HeaderReplacement) []model.Header {
	for i := range headers {
		// HTTP header names are case insensitive
		if textutil.CaseInsensitiveEquals(headers[i].Key, rule.Name) {
			headers[i].Value = rule.NewValue
		}
	}
	if rule.AddValue != "" {
		headers = append(headers, model.Header{Key: rule.Name, Value: rule.AddValue})
	}
	return headers
}

func hostPass(rule model.Substitution) requestPass {
	return func(request *model.Request) error {
		url, err := urlOf(request)
		if err != nil {
			return err
		}
		if len(url.Host) == 0 {
			return errors.Wrap(ErrMalformedRequest, "url has no host")
		}
		url.Raw = textutil.ReplaceFirst(url.Raw, rule.Before, rule.After)
		url.Host = replaceHost(url.Host, rule)
		return nil
	}
}

// replaceHost rewrites the first host label. When rule.Before starts in the
// first label and runs into the next ones, the labels are rewritten as one
// dotted name.
func replaceHost(labels []string, rule model.Substitution) []string {
	if strings.Contains(labels[0], rule.Before) {
		labels[0] = textutil.ReplaceFirst(labels[0], rule.Before, rule.After)
		return labels
	}
	joined := strings.Join(labels, ".")
	if i := strings.Index(joined, rule.Before); i < 0 || i >= len(labels[0]) {
		return labels
	}
	return strings.Split(textutil.ReplaceFirst(joined, rule.Before, rule.After), ".")
}

func pathPrefixPass(rule model.Substitution) requestPass {
	return func(request *model.Request) error {
		url, err := urlOf(request)
		if err != nil {
			return err
		}
		request.Name = textutil.ReplaceFirst(request.Name, rule.Before, "")
		url.Raw = textutil.ReplaceFirst(url.Raw, rule.Before, rule.After)
		if len(url.Path) == 0 {
			return nil
		}
		// before and after may span several segments or parts of segments
		path := textutil.ReplaceFirst(strings.Join(url.Path, "/"), rule.Before, rule.After)
		url.Path = strings.Split(path, "/")
		return nil
	}
}

func pathVariablesPass(rules []model.PathReplacement) requestPass {
	return func(request *model.Request) error {
		url, err := urlOf(request)
		if err != nil {
			return err
		}
		for _, rule := range rules {
			request.Name = textutil.ReplacePathPartInURL(request.Name, rule)
			url.Raw = textutil.ReplacePathPartInURL(url.Raw, rule)
			url.Path = textutil.ReplacePathPartInPathArray(url.Path, rule)
		}
		return nil
	}
}

func payloadOf(request *model.Request) (*model.RequestPayload, error) {
	if request.Request == nil {
		return nil, errors.Wrap(ErrMalformedRequest, "request payload is null")
	}
	return request.Request, nil
}

func urlOf(request *model.Request) (*model.URL, error) {
	payload, err := payloadOf(request)
	if err != nil {
		return nil, err
	}
	if payload.URL == nil {
		return nil, errors.Wrap(ErrMalformedRequest, "request has no url")
	}
	return payload.URL, nil
}
