package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/internal/keypath"
	"github.com/erraggy/docmod/value"
)

// Matcher is a compiled selector.
type Matcher struct {
	test predicate
}

type predicate func(v any) (bool, error)

// Compile compiles a selector.
//
// A selector whose keys are all comparison operators, such as
// {"$gte": 5, "$lt": 10}, is a condition on the tested value itself. Any
// other selector tests fields of a document:
//
//	{"name": "x", "stats.views": {"$gt": 10}}
//	{"$or": [{"a": 1}, {"b": 1}]}
//	{"$where": "qty * price > 100"}
//
// $where expressions are evaluated with github.com/expr-lang/expr against
// the document's fields; the document itself is available as "this".
func Compile(selector *value.Document) (*Matcher, error) {
	if selector == nil {
		return nil, &docerrors.ShapeError{Message: "selector must be a document"}
	}
	var (
		test predicate
		err  error
	)
	if isOperatorCondition(selector) {
		test, err = compileCondition(selector)
	} else {
		test, err = compileDocument(selector)
	}
	if err != nil {
		return nil, err
	}
	return &Matcher{test: test}, nil
}

// DocumentMatches reports whether v satisfies the selector.
func (m *Matcher) DocumentMatches(v any) (bool, error) {
	return m.test(v)
}

var logicalOperators = map[string]bool{"$and": true, "$or": true, "$nor": true, "$where": true}

// isOperatorCondition reports whether every key is a value operator.
func isOperatorCondition(d *value.Document) bool {
	if d.Len() == 0 {
		return false
	}
	for _, k := range d.Keys() {
		if !strings.HasPrefix(k, "$") || logicalOperators[k] {
			return false
		}
	}
	return true
}

func compileDocument(selector *value.Document) (predicate, error) {
	var tests []predicate
	for key, cond := range selector.All() {
		var (
			test predicate
			err  error
		)
		switch key {
		case "$and", "$or", "$nor":
			test, err = compileLogical(key, cond)
		case "$where":
			test, err = compileWhere(cond)
		default:
			if strings.HasPrefix(key, "$") {
				return nil, &docerrors.UnsupportedOperatorError{Operator: key, Unknown: true}
			}
			test, err = compileField(key, cond)
		}
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	return allOf(tests), nil
}

func allOf(tests []predicate) predicate {
	return func(v any) (bool, error) {
		for _, t := range tests {
			ok, err := t(v)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

func compileLogical(op string, cond any) (predicate, error) {
	list, ok := cond.(*value.Array)
	if !ok || list.Len() == 0 {
		return nil, &docerrors.ShapeError{Operator: op, Message: op + " must be a non-empty array"}
	}
	tests := make([]predicate, 0, list.Len())
	for _, e := range list.All() {
		sub, ok := e.(*value.Document)
		if !ok {
			return nil, &docerrors.ShapeError{Operator: op, Message: op + " entries must be documents"}
		}
		t, err := compileDocument(sub)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}

	switch op {
	case "$and":
		return allOf(tests), nil
	case "$or":
		return func(v any) (bool, error) {
			for _, t := range tests {
				ok, err := t(v)
				if err != nil || ok {
					return ok, err
				}
			}
			return false, nil
		}, nil
	}
	or, _ := compileLogical("$or", cond)
	return func(v any) (bool, error) {
		ok, err := or(v)
		return !ok, err
	}, nil
}

func compileWhere(cond any) (predicate, error) {
	var src string
	switch c := cond.(type) {
	case string:
		src = c
	case value.Code:
		src = string(c)
	default:
		return nil, &docerrors.ShapeError{Operator: "$where", Message: "$where must be an expression string"}
	}
	program, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, &docerrors.ShapeError{Operator: "$where", Message: err.Error()}
	}
	return func(v any) (bool, error) {
		return runWhere(program, v)
	}, nil
}

func runWhere(program *vm.Program, v any) (bool, error) {
	env := map[string]any{"this": value.ToGo(v)}
	if d, ok := v.(*value.Document); ok {
		for k, fv := range d.All() {
			env[k] = value.ToGo(fv)
		}
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("query: $where: %w", err)
	}
	b, _ := out.(bool)
	return b, nil
}

func compileField(path string, cond any) (predicate, error) {
	var test predicate
	if d, ok := cond.(*value.Document); ok && isOperatorCondition(d) {
		t, err := compileCondition(d)
		if err != nil {
			return nil, err
		}
		test = t
	} else {
		test = literal(cond)
	}
	return func(v any) (bool, error) {
		found, ok := keypath.Lookup(v, path)
		if !ok {
			found = value.Undefined
		}
		return test(found)
	}, nil
}

// literal matches a value equal to want, or an array holding such a value.
// A regular expression matches strings.
func literal(want any) predicate {
	if re, ok := want.(*value.Regex); ok {
		compiled, err := compileRegex(re.Pattern, re.Options)
		return func(v any) (bool, error) {
			if err != nil {
				return false, err
			}
			return anyElement(v, func(e any) bool {
				s, ok := e.(string)
				return ok && compiled.MatchString(s)
			}), nil
		}
	}
	return func(v any) (bool, error) {
		if _, undef := v.(value.UndefinedType); undef {
			return want == nil, nil
		}
		return anyElement(v, func(e any) bool { return value.Equal(e, want) }), nil
	}
}

// anyElement applies test to v and, when v is an array, to each element.
func anyElement(v any, test func(any) bool) bool {
	if test(v) {
		return true
	}
	if arr, ok := v.(*value.Array); ok {
		for _, e := range arr.All() {
			if test(e) {
				return true
			}
		}
	}
	return false
}

func compileRegex(pattern, options string) (*regexp.Regexp, error) {
	var flags string
	for _, o := range options {
		switch o {
		case 'i', 'm', 's':
			flags += string(o)
		}
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &docerrors.ShapeError{Operator: "$regex", Message: err.Error()}
	}
	return re, nil
}
