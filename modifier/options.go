package modifier

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/docmod/internal/options"
	"github.com/erraggy/docmod/value"
)

// Option is a function that configures a modify operation.
type Option func(*modifyConfig) error

// modifyConfig holds configuration for a modify operation.
type modifyConfig struct {
	// Input source for the document (exactly one must be set)
	docFilePath *string
	doc         *value.Document

	// Input source for the modifier (exactly one must be set)
	specFilePath *string
	spec         *value.Document

	arrayIndices []int
	inPlace      bool
	modifier     Modifier
}

// ModifyResult contains the outcome of ModifyWithOptions.
type ModifyResult struct {
	// Document is the modified document. With WithInPlace it is the input
	// document itself.
	Document *value.Document
	// Mode says whether the modifier replaced the document or applied
	// operators.
	Mode Mode
	// Changes lists every operator application in order. It is empty in
	// replace mode.
	Changes []ChangeRecord
}

// HasChanges reports whether the modifier did anything.
func (r *ModifyResult) HasChanges() bool {
	return r.Mode == ModeReplace || len(r.Changes) > 0
}

// WithDocument specifies an already-parsed document as the input.
func WithDocument(doc *value.Document) Option {
	return func(cfg *modifyConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithDocumentFilePath specifies a JSON or YAML file as the input document.
func WithDocumentFilePath(path string) Option {
	return func(cfg *modifyConfig) error {
		if path == "" {
			return fmt.Errorf("document path cannot be empty")
		}
		cfg.docFilePath = &path
		return nil
	}
}

// WithSpec specifies an already-parsed modifier.
func WithSpec(spec *value.Document) Option {
	return func(cfg *modifyConfig) error {
		if spec == nil {
			return fmt.Errorf("modifier cannot be nil")
		}
		cfg.spec = spec
		return nil
	}
}

// WithSpecFilePath specifies a JSON or YAML file holding the modifier.
func WithSpecFilePath(path string) Option {
	return func(cfg *modifyConfig) error {
		if path == "" {
			return fmt.Errorf("modifier path cannot be empty")
		}
		cfg.specFilePath = &path
		return nil
	}
}

// WithArrayIndices supplies the indices positional '$' segments resolve to.
func WithArrayIndices(indices ...int) Option {
	return func(cfg *modifyConfig) error {
		for _, i := range indices {
			if i < 0 {
				return fmt.Errorf("array index %d is negative", i)
			}
		}
		cfg.arrayIndices = indices
		return nil
	}
}

// WithInPlace moves the result into the input document, keeping its
// identity field. See Modifier.ModifyInPlace.
func WithInPlace(inPlace bool) Option {
	return func(cfg *modifyConfig) error {
		cfg.inPlace = inPlace
		return nil
	}
}

// WithAllowMixedOperators tolerates modifiers mixing operator and plain keys.
func WithAllowMixedOperators(allow bool) Option {
	return func(cfg *modifyConfig) error {
		cfg.modifier.AllowMixedOperators = allow
		return nil
	}
}

// WithIDKey sets the identity field kept by in-place application.
func WithIDKey(key string) Option {
	return func(cfg *modifyConfig) error {
		if key == "" {
			return fmt.Errorf("id key cannot be empty")
		}
		cfg.modifier.IDKey = key
		return nil
	}
}

// WithMaxArrayIndex bounds how far a path may pad an array with nulls.
// Zero, the default, means no limit.
func WithMaxArrayIndex(n int) Option {
	return func(cfg *modifyConfig) error {
		if n < 0 {
			return fmt.Errorf("max array index %d is negative", n)
		}
		cfg.modifier.MaxArrayIndex = n
		return nil
	}
}

// WithMatcher sets the factory compiling $pull conditions.
func WithMatcher(f MatcherFactory) Option {
	return func(cfg *modifyConfig) error {
		cfg.modifier.Matcher = f
		return nil
	}
}

// WithComparatorBuilder sets the builder compiling $push $sort specs.
func WithComparatorBuilder(b ComparatorBuilder) Option {
	return func(cfg *modifyConfig) error {
		cfg.modifier.Comparators = b
		return nil
	}
}

// WithClock sets the clock used by $currentDate.
func WithClock(now func() time.Time) Option {
	return func(cfg *modifyConfig) error {
		cfg.modifier.Now = now
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(cfg *modifyConfig) error {
		cfg.modifier.Logger = l
		return nil
	}
}

// WithRegistry sets the operator registry.
func WithRegistry(r *Registry) Option {
	return func(cfg *modifyConfig) error {
		if r == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		cfg.modifier.Registry = r
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts ...Option) (*modifyConfig, error) {
	cfg := &modifyConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleSource("document",
		options.Source{Name: "WithDocumentFilePath", Set: cfg.docFilePath != nil},
		options.Source{Name: "WithDocument", Set: cfg.doc != nil},
	); err != nil {
		return nil, err
	}
	if err := options.ValidateSingleSource("modifier",
		options.Source{Name: "WithSpecFilePath", Set: cfg.specFilePath != nil},
		options.Source{Name: "WithSpec", Set: cfg.spec != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadInputs reads the document and modifier from the configuration.
func loadInputs(cfg *modifyConfig) (*value.Document, *value.Document, error) {
	doc := cfg.doc
	if cfg.docFilePath != nil {
		d, err := ParseDocumentFile(*cfg.docFilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("modifier: failed to parse document: %w", err)
		}
		doc = d
	}

	spec := cfg.spec
	if cfg.specFilePath != nil {
		s, err := ParseDocumentFile(*cfg.specFilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("modifier: failed to parse modifier: %w", err)
		}
		spec = s
	}

	return doc, spec, nil
}

// ParseDocumentFile reads a JSON or YAML document from path. A path of "-"
// reads standard input.
func ParseDocumentFile(path string) (*value.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is chosen by the caller
	}
	if err != nil {
		return nil, err
	}
	return value.ParseDocument(data)
}

// ModifyWithOptions applies a modifier using functional options.
//
// Example:
//
//	result, err := modifier.ModifyWithOptions(
//	    modifier.WithDocumentFilePath("user.yaml"),
//	    modifier.WithSpecFilePath("update.json"),
//	    modifier.WithArrayIndices(2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Document)
func ModifyWithOptions(opts ...Option) (*ModifyResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("modifier: invalid options: %w", err)
	}

	doc, spec, err := loadInputs(cfg)
	if err != nil {
		return nil, err
	}

	m := &cfg.modifier
	out, mode, changes, err := m.modify(doc, spec, ArrayIndices(cfg.arrayIndices...))
	if err != nil {
		return nil, err
	}
	if cfg.inPlace {
		replaceContents(doc, out, m.idKey())
		out = doc
	}
	return &ModifyResult{Document: out, Mode: mode, Changes: changes}, nil
}
