// Package query provides the selector matcher and sort comparator the
// modifier uses for $pull conditions and sorted $push.
//
// Both are deliberately small: equality, comparison, membership, existence,
// regular expression and logical operators, plus $where expressions
// evaluated with expr-lang. Sorting compares values with the cross-type
// order of package value, optionally collating strings for a language.
//
//	m, err := query.Compile(value.D("qty", value.D("$gte", 10)))
//	ok, err := m.DocumentMatches(value.D("qty", 12))
//
//	cmp, err := query.CompileSort(value.D("name", 1), query.WithCollation(language.German))
package query
