package query

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/internal/keypath"
	"github.com/erraggy/docmod/value"
)

// CompareFunc orders two documents.
type CompareFunc func(a, b any) (int, error)

// SortOption configures CompileSort.
type SortOption func(*sortConfig)

type sortConfig struct {
	collation *language.Tag
}

// WithCollation compares strings with the collation rules of tag instead of
// byte order. A comparator built with a collation must not be shared
// between goroutines.
func WithCollation(tag language.Tag) SortOption {
	return func(cfg *sortConfig) {
		cfg.collation = &tag
	}
}

type sortKey struct {
	path      string
	ascending bool
}

// CompileSort compiles a sort specification into a comparator. Accepted
// forms are a document of path/direction pairs, where a positive number is
// ascending and a negative one descending:
//
//	{"score": -1, "name": 1}
//
// and an array of paths or [path, "asc"|"desc"] pairs:
//
//	["name", ["score", "desc"]]
//
// Keys are compared in order; the first difference decides. A missing
// field compares below every value, including null.
func CompileSort(spec any, opts ...SortOption) (CompareFunc, error) {
	cfg := &sortConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	keys, err := parseSortSpec(spec)
	if err != nil {
		return nil, err
	}

	compare := value.Compare
	if cfg.collation != nil {
		col := collate.New(*cfg.collation)
		compare = func(a, b any) (int, error) {
			as, aok := a.(string)
			bs, bok := b.(string)
			if aok && bok {
				return col.CompareString(as, bs), nil
			}
			return value.Compare(a, b)
		}
	}

	return func(a, b any) (int, error) {
		for _, k := range keys {
			av, ok := keypath.Lookup(a, k.path)
			if !ok {
				av = value.Undefined
			}
			bv, ok := keypath.Lookup(b, k.path)
			if !ok {
				bv = value.Undefined
			}
			c, err := compare(av, bv)
			if err != nil {
				return 0, err
			}
			if c != 0 {
				if !k.ascending {
					c = -c
				}
				return c, nil
			}
		}
		return 0, nil
	}, nil
}

func parseSortSpec(spec any) ([]sortKey, error) {
	var keys []sortKey
	switch s := spec.(type) {
	case *value.Document:
		for path, dir := range s.All() {
			n, ok := value.ToFloat(dir)
			if !ok || n == 0 {
				return nil, sortError("sort direction for %q must be 1 or -1", path)
			}
			keys = append(keys, sortKey{path: path, ascending: n > 0})
		}
	case *value.Array:
		for _, e := range s.All() {
			switch k := e.(type) {
			case string:
				keys = append(keys, sortKey{path: k, ascending: true})
			case *value.Array:
				if k.Len() != 2 {
					return nil, sortError("sort pair must be [path, direction]")
				}
				path, ok := k.Get(0).(string)
				if !ok {
					return nil, sortError("sort path must be a string")
				}
				switch k.Get(1) {
				case "asc":
					keys = append(keys, sortKey{path: path, ascending: true})
				case "desc":
					keys = append(keys, sortKey{path: path, ascending: false})
				default:
					return nil, sortError("sort direction for %q must be \"asc\" or \"desc\"", path)
				}
			default:
				return nil, sortError("unsupported sort key %v", e)
			}
		}
	default:
		return nil, sortError("sort specification must be a document or an array")
	}
	if len(keys) == 0 {
		return nil, sortError("sort specification is empty")
	}
	return keys, nil
}

func sortError(format string, args ...any) error {
	return &docerrors.ShapeError{Operator: "$sort", Message: fmt.Sprintf(format, args...)}
}
