package modifier

import (
	"strings"
	"time"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/internal/fieldname"
	"github.com/erraggy/docmod/internal/keypath"
	"github.com/erraggy/docmod/query"
	"github.com/erraggy/docmod/value"
)

// DefaultIDKey is the identity field ModifyInPlace preserves.
const DefaultIDKey = "_id"

// Mode says how a modifier was interpreted.
type Mode string

const (
	// ModeReplace means the modifier was a plain document that replaced the
	// input wholesale.
	ModeReplace Mode = "replace"
	// ModeOperators means the modifier was a set of update operators.
	ModeOperators Mode = "operators"
)

// Modifier applies modifier documents. The zero value is ready to use and
// falls back to the defaults listed on each field.
//
// A Modifier holds configuration only and is safe for concurrent use as long
// as its fields are not changed while calls are in flight.
type Modifier struct {
	// Matcher compiles $pull conditions. Defaults to query.Compile.
	Matcher MatcherFactory
	// Comparators compiles $push $sort specifications. Defaults to
	// query.CompileSort.
	Comparators ComparatorBuilder
	// Now is the clock used by $currentDate. Defaults to time.Now.
	Now func() time.Time
	// Logger receives debug and warning output. Defaults to NopLogger.
	Logger Logger
	// AllowMixedOperators tolerates modifiers mixing operator and plain top
	// level keys. Such modifiers replace the document with their plain keys
	// and the operator keys are dropped with a warning.
	AllowMixedOperators bool
	// IDKey is the identity field kept by ModifyInPlace. Defaults to "_id".
	IDKey string
	// Registry holds the supported operators. Defaults to DefaultRegistry().
	Registry *Registry
	// MaxArrayIndex, when positive, is the largest index a path may pad an
	// array out to with nulls. Zero means no limit.
	MaxArrayIndex int
}

// New creates a Modifier with default settings.
func New() *Modifier {
	return &Modifier{
		IDKey:    DefaultIDKey,
		Registry: DefaultRegistry(),
	}
}

// CallOption configures a single Modify call.
type CallOption func(*callConfig)

type callConfig struct {
	arrayIndices []int
}

// ArrayIndices supplies the indices positional '$' segments resolve to,
// typically the array positions a preceding query matched.
func ArrayIndices(indices ...int) CallOption {
	return func(cfg *callConfig) {
		cfg.arrayIndices = indices
	}
}

// ChangeRecord names one operator application.
type ChangeRecord struct {
	Operator string `json:"operator" yaml:"operator"`
	Path     string `json:"path" yaml:"path"`
}

// Modify applies spec to doc and returns the resulting document.
//
// A spec without '$' keys replaces the document. A spec made of '$' keys
// applies each operator to each of its paths, in order. Neither doc nor spec
// is modified, and the result shares no structure with either.
func (m *Modifier) Modify(doc, spec *value.Document, opts ...CallOption) (*value.Document, error) {
	out, _, _, err := m.modify(doc, spec, opts...)
	return out, err
}

// ModifyInPlace applies spec like Modify and then moves the result into doc.
// Every field of doc except the identity field is dropped and the fields of
// the result are copied in; the identity field takes the result's value if
// it has one. On error doc is left untouched.
func (m *Modifier) ModifyInPlace(doc, spec *value.Document, opts ...CallOption) error {
	if doc == nil {
		return &docerrors.ModifierError{Message: "in-place modification needs a document"}
	}
	out, _, _, err := m.modify(doc, spec, opts...)
	if err != nil {
		return err
	}
	replaceContents(doc, out, m.idKey())
	return nil
}

func replaceContents(doc, out *value.Document, idKey string) {
	id, hasID := doc.Get(idKey)
	doc.Clear()
	if hasID {
		doc.Set(idKey, id)
	}
	for k, v := range out.All() {
		doc.Set(k, v)
	}
}

func (m *Modifier) modify(doc, spec *value.Document, opts ...CallOption) (*value.Document, Mode, []ChangeRecord, error) {
	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if spec == nil {
		return nil, "", nil, &docerrors.ModifierError{Message: "modifier must be a document"}
	}
	spec = spec.Clone()

	isOperators, err := m.classify(spec)
	if err != nil {
		return nil, "", nil, err
	}

	if !isOperators {
		if err := fieldname.ValidateTree(spec); err != nil {
			return nil, "", nil, err
		}
		m.logger().Debug("replacing document", "fields", spec.Len())
		return spec, ModeReplace, nil, nil
	}

	working := doc.Clone()
	if working == nil {
		working = value.NewDocument()
	}

	registry := m.registry()
	var changes []ChangeRecord
	for opName, operand := range spec.All() {
		op, ok := registry.Lookup(opName)
		if !ok {
			return nil, "", nil, &docerrors.UnsupportedOperatorError{Operator: opName, Unknown: true}
		}
		paths, ok := operand.(*value.Document)
		if !ok {
			return nil, "", nil, &docerrors.ModifierError{Operator: opName, Message: "operand must be a document, got " + value.Classify(operand).String()}
		}
		for path, arg := range paths.All() {
			if err := m.apply(op, working, path, arg, cfg.arrayIndices); err != nil {
				return nil, "", nil, err
			}
			changes = append(changes, ChangeRecord{Operator: opName, Path: path})
		}
	}
	return working, ModeOperators, changes, nil
}

// classify reports whether spec is an operator document. Mixed specs are
// rejected, or reduced to their plain keys when AllowMixedOperators is set.
func (m *Modifier) classify(spec *value.Document) (bool, error) {
	var operators, plain []string
	for _, k := range spec.Keys() {
		if strings.HasPrefix(k, "$") {
			operators = append(operators, k)
		} else {
			plain = append(plain, k)
		}
	}
	switch {
	case len(plain) == 0:
		return len(operators) > 0, nil
	case len(operators) == 0:
		return false, nil
	case !m.AllowMixedOperators:
		return false, &docerrors.ModifierError{Message: "inconsistent operator: " + spec.String()}
	}

	m.logger().Warn("modifier mixes operators and fields; replacing document and dropping operators",
		"operators", operators, "fields", plain)
	for _, k := range operators {
		spec.Remove(k)
	}
	return false, nil
}

func (m *Modifier) apply(op Operator, root *value.Document, path string, arg any, indices []int) error {
	segments, err := keypath.Split(path)
	if err != nil {
		return err
	}
	target, err := keypath.Resolve(root, segments, keypath.Options{
		NoCreate:      op.NoCreate,
		ForbidArray:   op.ForbidArray,
		ArrayIndices:  indices,
		MaxArrayIndex: m.MaxArrayIndex,
	})
	if err != nil {
		return err
	}

	c := &Call{
		Operator: op.Name,
		Path:     path,
		Field:    segments[len(segments)-1],
		Arg:      arg,
		Root:     root,
		m:        m,
	}
	switch target.State {
	case keypath.Found:
		c.target = target
		c.Field = target.Field
	case keypath.Missing:
		c.Missing = true
	case keypath.ArrayHit:
		c.ArrayHit = true
	}

	m.logger().Debug("applying operator", "op", op.Name, "path", path, "missing", c.Missing)
	return op.Apply(c)
}

func (m *Modifier) idKey() string {
	if m.IDKey == "" {
		return DefaultIDKey
	}
	return m.IDKey
}

func (m *Modifier) registry() *Registry {
	if m.Registry == nil {
		return DefaultRegistry()
	}
	return m.Registry
}

func (m *Modifier) logger() Logger {
	if m.Logger == nil {
		return NopLogger{}
	}
	return m.Logger
}

func (m *Modifier) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *Modifier) matcherFactory() MatcherFactory {
	if m.Matcher == nil {
		return defaultMatcher
	}
	return m.Matcher
}

func (m *Modifier) comparatorBuilder() ComparatorBuilder {
	if m.Comparators == nil {
		return defaultComparator
	}
	return m.Comparators
}

func defaultMatcher(selector *value.Document) (Matcher, error) {
	mt, err := query.Compile(selector)
	if err != nil {
		return nil, err
	}
	return mt, nil
}

func defaultComparator(sortSpec any) (Comparator, error) {
	cmp, err := query.CompileSort(sortSpec)
	if err != nil {
		return nil, err
	}
	return Comparator(cmp), nil
}
