package modifier

import (
	"math"

	"github.com/erraggy/docmod/internal/fieldname"
	"github.com/erraggy/docmod/value"
)

// existingArray returns the array at the call's path. exists is false when
// the field is absent; a present non-array value is an error.
func existingArray(c *Call) (arr *value.Array, exists bool, err error) {
	cur, exists := c.Get()
	if !exists {
		return nil, false, nil
	}
	arr, ok := cur.(*value.Array)
	if !ok {
		name := c.Operator
		if name == "$pull" || name == "$pullAll" {
			name = "$pull/pullAll"
		}
		return nil, true, typeMismatch(c, "cannot apply "+name+" modifier to non-array")
	}
	return arr, true, nil
}

// truthy reports whether a modifier argument counts as set.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := value.ToFloat(v); ok {
		return f != 0 && !value.IsNaN(v)
	}
	return true
}

func applyPush(c *Call) error {
	arr, exists, err := existingArray(c)
	if err != nil {
		return err
	}
	if !exists {
		arr = value.NewArray()
		c.Set(arr)
	}

	spec, _ := c.Arg.(*value.Document)
	each, hasEach := spec.Get("$each")
	if !hasEach || !truthy(each) {
		if err := fieldname.ValidateTree(c.Arg); err != nil {
			return err
		}
		arr.Append(c.Arg)
		return nil
	}

	toPush, ok := each.(*value.Array)
	if !ok {
		return shapeError(c, "$each must be an array")
	}
	if err := fieldname.ValidateTree(toPush); err != nil {
		return err
	}

	position, hasPosition := 0.0, false
	if p, ok := spec.Get("$position"); ok {
		n, ok := value.ToFloat(p)
		if !ok {
			return shapeError(c, "$position must be a numeric value")
		}
		if n < 0 {
			return shapeError(c, "$position in $push must be zero or positive")
		}
		position, hasPosition = n, true
	}

	slice, hasSlice := 0.0, false
	if s, ok := spec.Get("$slice"); ok {
		n, ok := value.ToFloat(s)
		if !ok {
			return shapeError(c, "$slice must be a numeric value")
		}
		if n > 0 {
			return shapeError(c, "$slice in $push must be zero or negative")
		}
		slice, hasSlice = n, true
	}

	var cmp Comparator
	if sortSpec, ok := spec.Get("$sort"); ok && truthy(sortSpec) {
		if !hasSlice {
			return shapeError(c, "$sort requires $slice to be present")
		}
		cmp, err = c.Comparator(sortSpec)
		if err != nil {
			return err
		}
		for _, e := range toPush.All() {
			if value.Classify(e) != value.TagObject {
				return typeMismatch(c, "$push like modifiers using $sort require all elements to be objects")
			}
		}
	}

	if hasPosition {
		arr.Insert(insertIndex(position, arr.Len()), toPush.Values()...)
	} else {
		arr.Append(toPush.Values()...)
	}

	if cmp != nil {
		if err := arr.Sort(cmp); err != nil {
			return err
		}
	}

	if hasSlice {
		arr.Replace(keepLast(arr.Values(), slice))
	}
	return nil
}

// insertIndex turns a non-negative $position into an index in [0, length].
// Fractions truncate and NaN inserts at the front.
func insertIndex(n float64, length int) int {
	switch {
	case math.IsNaN(n):
		return 0
	case n >= float64(length):
		return length
	}
	return int(n)
}

// keepLast applies a zero or negative $slice to values. Zero empties the
// array; -k keeps the last k elements after truncating k toward zero.
func keepLast(values []any, n float64) []any {
	if n == 0 {
		return []any{}
	}
	k := math.Trunc(-n)
	if math.IsNaN(k) || k == 0 || k >= float64(len(values)) {
		return values
	}
	return values[len(values)-int(k):]
}

func applyPushAll(c *Call) error {
	items, ok := c.Arg.(*value.Array)
	if !ok {
		return shapeError(c, "modifier $pushAll/pullAll allowed for arrays only")
	}
	if err := fieldname.ValidateTree(items); err != nil {
		return err
	}
	arr, exists, err := existingArray(c)
	if err != nil {
		return err
	}
	if !exists {
		c.Set(items)
		return nil
	}
	arr.Append(items.Values()...)
	return nil
}

func applyAddToSet(c *Call) error {
	candidates := []any{c.Arg}
	if d, ok := c.Arg.(*value.Document); ok && d.Len() > 0 && d.Keys()[0] == "$each" {
		each, _ := d.Get("$each")
		items, ok := each.(*value.Array)
		if !ok {
			return shapeError(c, "$each must be an array")
		}
		candidates = items.Values()
	}
	for _, v := range candidates {
		if err := fieldname.ValidateTree(v); err != nil {
			return err
		}
	}

	arr, exists, err := existingArray(c)
	if err != nil {
		return err
	}
	if !exists {
		arr = value.NewArray()
		c.Set(arr)
	}
	for _, v := range candidates {
		if !containsEqual(arr, v) {
			arr.Append(v)
		}
	}
	return nil
}

func applyPop(c *Call) error {
	if c.Missing {
		return nil
	}
	arr, exists, err := existingArray(c)
	if err != nil || !exists || arr.Len() == 0 {
		return err
	}
	if n, ok := value.ToFloat(c.Arg); ok && n < 0 {
		arr.RemoveAt(0)
	} else {
		arr.RemoveAt(arr.Len() - 1)
	}
	return nil
}

func applyPull(c *Call) error {
	if c.Missing {
		return nil
	}
	arr, exists, err := existingArray(c)
	if err != nil || !exists {
		return err
	}

	var keep func(v any) (bool, error)
	if cond, ok := c.Arg.(*value.Document); ok {
		matcher, err := c.Matcher(cond)
		if err != nil {
			return err
		}
		keep = func(v any) (bool, error) {
			matched, err := matcher.DocumentMatches(v)
			return !matched, err
		}
	} else {
		keep = func(v any) (bool, error) {
			return !value.EqualOrdered(v, c.Arg), nil
		}
	}

	out := make([]any, 0, arr.Len())
	for _, v := range arr.All() {
		ok, err := keep(v)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, v)
		}
	}
	arr.Replace(out)
	return nil
}

func applyPullAll(c *Call) error {
	remove, ok := c.Arg.(*value.Array)
	if !ok {
		return shapeError(c, "modifier $pushAll/pullAll allowed for arrays only")
	}
	if c.Missing {
		return nil
	}
	arr, exists, err := existingArray(c)
	if err != nil || !exists {
		return err
	}
	out := make([]any, 0, arr.Len())
	for _, v := range arr.All() {
		if !containsEqual(remove, v) {
			out = append(out, v)
		}
	}
	arr.Replace(out)
	return nil
}

func containsEqual(arr *value.Array, v any) bool {
	for _, e := range arr.All() {
		if value.EqualOrdered(e, v) {
			return true
		}
	}
	return false
}
