package modifier

import "github.com/erraggy/docmod/value"

// Matcher tests a single value against a compiled selector. $pull uses it to
// decide which array elements to remove.
type Matcher interface {
	DocumentMatches(v any) (bool, error)
}

// MatcherFactory compiles a selector such as {"$gte": 5} or {"name": "x"}
// into a Matcher.
type MatcherFactory func(selector *value.Document) (Matcher, error)

// Comparator orders two values for a sorted $push.
type Comparator func(a, b any) (int, error)

// ComparatorBuilder compiles a $sort specification into a Comparator.
type ComparatorBuilder func(sortSpec any) (Comparator, error)
