package modifier

import (
	"maps"
	"slices"
)

// OperatorFunc applies one operator to one resolved path.
type OperatorFunc func(c *Call) error

// Operator describes an update operator.
type Operator struct {
	// Name is the operator token, including the leading '$'.
	Name string
	// Apply performs the update.
	Apply OperatorFunc
	// NoCreate resolves the path without creating intermediate structure.
	// A missing path reaches Apply with Call.Missing set.
	NoCreate bool
	// ForbidArray stops resolution at the first array. Apply then sees
	// Call.ArrayHit set.
	ForbidArray bool
}

// Registry maps operator tokens to operators. A Registry is immutable once
// built and safe for concurrent use.
type Registry struct {
	ops map[string]Operator
}

var defaultRegistry = NewRegistry(
	Operator{Name: "$currentDate", Apply: applyCurrentDate},
	Operator{Name: "$min", Apply: applyMin},
	Operator{Name: "$max", Apply: applyMax},
	Operator{Name: "$inc", Apply: applyInc},
	Operator{Name: "$set", Apply: applySet},
	Operator{Name: "$setOnInsert", Apply: applySetOnInsert},
	Operator{Name: "$unset", Apply: applyUnset, NoCreate: true},
	Operator{Name: "$push", Apply: applyPush},
	Operator{Name: "$pushAll", Apply: applyPushAll},
	Operator{Name: "$addToSet", Apply: applyAddToSet},
	Operator{Name: "$pop", Apply: applyPop, NoCreate: true},
	Operator{Name: "$pull", Apply: applyPull, NoCreate: true},
	Operator{Name: "$pullAll", Apply: applyPullAll, NoCreate: true},
	Operator{Name: "$rename", Apply: applyRename, NoCreate: true, ForbidArray: true},
	Operator{Name: "$bit", Apply: applyBit},
)

// DefaultRegistry returns the registry of built-in operators.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry from ops. Later entries replace earlier
// ones with the same name.
func NewRegistry(ops ...Operator) *Registry {
	r := &Registry{ops: make(map[string]Operator, len(ops))}
	for _, op := range ops {
		r.ops[op.Name] = op
	}
	return r
}

// With returns a copy of r with op added or replaced.
func (r *Registry) With(op Operator) *Registry {
	out := &Registry{ops: maps.Clone(r.ops)}
	out.ops[op.Name] = op
	return out
}

// Lookup returns the operator registered under name.
func (r *Registry) Lookup(name string) (Operator, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered operator tokens in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.ops))
}
