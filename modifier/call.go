package modifier

import (
	"time"

	"github.com/erraggy/docmod/internal/keypath"
	"github.com/erraggy/docmod/value"
)

// Call carries one operator application: the operator, the path it was
// given, its argument and the resolved location.
type Call struct {
	// Operator is the operator token, e.g. "$inc".
	Operator string
	// Path is the full dotted keypath as written in the modifier.
	Path string
	// Field is the final path segment. Array indices are normalized, so
	// "a.01" yields "1".
	Field string
	// Arg is the operator's argument. It is a private copy and may be
	// stored in the document without cloning.
	Arg any
	// Root is the working document the path was resolved in.
	Root *value.Document
	// Missing is set when the operator resolves without creating structure
	// and the path does not exist.
	Missing bool
	// ArrayHit is set when the operator forbids arrays and the path runs
	// through one.
	ArrayHit bool

	target *keypath.Target
	m      *Modifier
}

// Get returns the current value at the path and whether it exists.
func (c *Call) Get() (any, bool) {
	if c.target == nil {
		return nil, false
	}
	return c.target.Get()
}

// Set writes v at the path.
func (c *Call) Set(v any) {
	if c.target != nil {
		c.target.Set(v)
	}
}

// Delete removes the field, or nulls it out when it is an array element.
func (c *Call) Delete() {
	if c.target != nil {
		c.target.Delete()
	}
}

// InArray reports whether the path ends in an array element.
func (c *Call) InArray() bool {
	return c.target != nil && c.target.IsArray()
}

// Now returns the current time from the modifier's clock.
func (c *Call) Now() time.Time {
	return c.m.now()
}

// Matcher compiles selector with the modifier's matcher factory.
func (c *Call) Matcher(selector *value.Document) (Matcher, error) {
	return c.m.matcherFactory()(selector)
}

// Comparator compiles a sort specification with the modifier's comparator
// builder.
func (c *Call) Comparator(sortSpec any) (Comparator, error) {
	return c.m.comparatorBuilder()(sortSpec)
}

// Logger returns the modifier's logger.
func (c *Call) Logger() Logger {
	return c.m.logger()
}
