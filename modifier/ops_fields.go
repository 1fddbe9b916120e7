package modifier

import (
	"strings"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/internal/fieldname"
	"github.com/erraggy/docmod/internal/keypath"
	"github.com/erraggy/docmod/value"
)

func typeMismatch(c *Call, msg string) error {
	return &docerrors.TypeMismatchError{Operator: c.Operator, Field: c.Field, Message: msg}
}

func shapeError(c *Call, msg string) error {
	return &docerrors.ShapeError{Operator: c.Operator, Field: c.Field, Message: msg}
}

func applyCurrentDate(c *Call) error {
	if d, ok := c.Arg.(*value.Document); ok && d.Has("$type") {
		if t, _ := d.Get("$type"); t != "date" {
			return shapeError(c, "docmod does currently only support the date type in $currentDate modifiers")
		}
	} else if b, ok := c.Arg.(bool); !ok || !b {
		return shapeError(c, "invalid $currentDate modifier")
	}
	c.Set(c.Now())
	return nil
}

func applyMin(c *Call) error {
	return applyBound(c, func(arg, cur float64) bool { return cur > arg })
}

func applyMax(c *Call) error {
	return applyBound(c, func(arg, cur float64) bool { return cur < arg })
}

// applyBound sets the field to the argument when the field is absent or
// replace reports true for the current value.
func applyBound(c *Call, replace func(arg, cur float64) bool) error {
	arg, ok := value.ToFloat(c.Arg)
	if !ok {
		return typeMismatch(c, "modifier "+c.Operator+" allowed for numbers only")
	}
	cur, exists := c.Get()
	if !exists {
		c.Set(c.Arg)
		return nil
	}
	curNum, ok := value.ToFloat(cur)
	if !ok {
		return typeMismatch(c, "cannot apply "+c.Operator+" modifier to non-number")
	}
	if replace(arg, curNum) {
		c.Set(c.Arg)
	}
	return nil
}

func applyInc(c *Call) error {
	if !value.IsNumber(c.Arg) {
		return typeMismatch(c, "modifier $inc allowed for numbers only")
	}
	cur, exists := c.Get()
	if !exists {
		c.Set(c.Arg)
		return nil
	}
	sum, ok := value.AddNumbers(cur, c.Arg)
	if !ok {
		return typeMismatch(c, "cannot apply $inc modifier to non-number")
	}
	c.Set(sum)
	return nil
}

func applySet(c *Call) error {
	if c.target == nil {
		return &docerrors.PathError{Path: c.Path, Segment: c.Field, Message: "cannot set property on null", SetProperty: true}
	}
	if err := fieldname.ValidateTree(c.Arg); err != nil {
		return err
	}
	c.Set(c.Arg)
	return nil
}

// applySetOnInsert does nothing: upsert callers turn $setOnInsert into $set
// before an insert.
func applySetOnInsert(*Call) error {
	return nil
}

func applyUnset(c *Call) error {
	if c.Missing {
		return nil
	}
	c.Delete()
	return nil
}

func applyRename(c *Call) error {
	if dest, ok := c.Arg.(string); ok && dest == c.Path {
		return shapeError(c, "$rename source must differ from target")
	}
	if c.ArrayHit {
		return &docerrors.PathError{Path: c.Path, Segment: c.Field, Message: "$rename source field invalid"}
	}
	dest, ok := c.Arg.(string)
	if !ok {
		return typeMismatch(c, "$rename target must be a string")
	}
	if strings.ContainsRune(dest, 0) {
		return &docerrors.FieldNameError{Field: dest, Reason: "contain null bytes"}
	}
	if c.Missing {
		return nil
	}
	v, exists := c.Get()
	if !exists {
		return nil
	}
	c.Delete()

	segments, err := keypath.Split(dest)
	if err != nil {
		return err
	}
	target, err := keypath.Resolve(c.Root, segments, keypath.Options{ForbidArray: true})
	if err != nil {
		return err
	}
	if target.State != keypath.Found {
		return &docerrors.PathError{Path: dest, Segment: segments[len(segments)-1], Message: "$rename target field invalid"}
	}
	target.Set(v)
	return nil
}

func applyBit(c *Call) error {
	return &docerrors.UnsupportedOperatorError{Operator: c.Operator, Field: c.Field}
}
