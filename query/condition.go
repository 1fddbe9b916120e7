package query

import (
	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/value"
)

// compileCondition compiles an operator document such as
// {"$gt": 1, "$lt": 5}. Every operator must hold.
func compileCondition(cond *value.Document) (predicate, error) {
	var tests []predicate
	for op, arg := range cond.All() {
		t, err := compileOperator(op, arg, cond)
		if err != nil {
			return nil, err
		}
		if t != nil {
			tests = append(tests, t)
		}
	}
	return allOf(tests), nil
}

func compileOperator(op string, arg any, cond *value.Document) (predicate, error) {
	switch op {
	case "$eq":
		return literal(arg), nil
	case "$ne":
		return not(literal(arg)), nil
	case "$gt":
		return ordered(arg, func(c int) bool { return c > 0 }), nil
	case "$gte":
		return ordered(arg, func(c int) bool { return c >= 0 }), nil
	case "$lt":
		return ordered(arg, func(c int) bool { return c < 0 }), nil
	case "$lte":
		return ordered(arg, func(c int) bool { return c <= 0 }), nil
	case "$in", "$nin":
		list, ok := arg.(*value.Array)
		if !ok {
			return nil, &docerrors.ShapeError{Operator: op, Message: op + " needs an array"}
		}
		tests := make([]predicate, 0, list.Len())
		for _, e := range list.All() {
			tests = append(tests, literal(e))
		}
		in := anyOf(tests)
		if op == "$nin" {
			return not(in), nil
		}
		return in, nil
	case "$exists":
		want := truthy(arg)
		return func(v any) (bool, error) {
			_, undef := v.(value.UndefinedType)
			return undef != want, nil
		}, nil
	case "$size":
		n, ok := value.ToFloat(arg)
		if !ok {
			return nil, &docerrors.ShapeError{Operator: op, Message: "$size needs a number"}
		}
		return func(v any) (bool, error) {
			arr, ok := v.(*value.Array)
			return ok && float64(arr.Len()) == n, nil
		}, nil
	case "$regex":
		re := &value.Regex{}
		switch p := arg.(type) {
		case string:
			re.Pattern = p
		case *value.Regex:
			*re = *p
		default:
			return nil, &docerrors.ShapeError{Operator: op, Message: "$regex needs a string or regular expression"}
		}
		if o, ok := cond.Get("$options"); ok {
			s, _ := o.(string)
			re.Options = s
		}
		return literal(re), nil
	case "$options":
		if !cond.Has("$regex") {
			return nil, &docerrors.ShapeError{Operator: op, Message: "$options needs a $regex"}
		}
		return nil, nil
	case "$not":
		sub, ok := arg.(*value.Document)
		if !ok {
			if re, isRe := arg.(*value.Regex); isRe {
				return not(literal(re)), nil
			}
			return nil, &docerrors.ShapeError{Operator: op, Message: "$not needs an operator document or regular expression"}
		}
		t, err := compileCondition(sub)
		if err != nil {
			return nil, err
		}
		return not(t), nil
	case "$elemMatch":
		sub, ok := arg.(*value.Document)
		if !ok {
			return nil, &docerrors.ShapeError{Operator: op, Message: "$elemMatch needs a document"}
		}
		m, err := Compile(sub)
		if err != nil {
			return nil, err
		}
		return func(v any) (bool, error) {
			arr, ok := v.(*value.Array)
			if !ok {
				return false, nil
			}
			for _, e := range arr.All() {
				matched, err := m.DocumentMatches(e)
				if err != nil || matched {
					return matched, err
				}
			}
			return false, nil
		}, nil
	}
	return nil, &docerrors.UnsupportedOperatorError{Operator: op, Unknown: true}
}

func not(t predicate) predicate {
	return func(v any) (bool, error) {
		ok, err := t(v)
		return !ok, err
	}
}

func anyOf(tests []predicate) predicate {
	return func(v any) (bool, error) {
		for _, t := range tests {
			ok, err := t(v)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// ordered matches values of the same kind as arg that compare as accepted
// says. Arrays match when any element does.
func ordered(arg any, accept func(int) bool) predicate {
	rank := value.Rank(value.Classify(arg))
	return func(v any) (bool, error) {
		var firstErr error
		matched := anyElement(v, func(e any) bool {
			if firstErr != nil || value.Rank(value.Classify(e)) != rank {
				return false
			}
			if _, undef := e.(value.UndefinedType); undef {
				return false
			}
			c, err := value.Compare(e, arg)
			if err != nil {
				firstErr = err
				return false
			}
			return accept(c)
		})
		return matched, firstErr
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	}
	if f, ok := value.ToFloat(v); ok {
		return f != 0
	}
	return true
}
