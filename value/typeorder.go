package value

import (
	"reflect"
	"regexp"
	"time"
)

// Tag classifies a value's kind.
type Tag int

// Value kinds. The numbering follows the BSON type codes the ordering was
// taken from; use [Rank] for ordering, never the raw value.
const (
	TagNumber   Tag = 1
	TagString   Tag = 2
	TagObject   Tag = 3
	TagArray    Tag = 4
	TagBinary   Tag = 5
	TagObjectID Tag = 7
	TagBoolean  Tag = 8
	TagDate     Tag = 9
	TagNull     Tag = 10
	TagRegex    Tag = 11
	TagCode     Tag = 13
)

// String returns the lower-case kind name.
func (t Tag) String() string {
	switch t {
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagObject:
		return "object"
	case TagArray:
		return "array"
	case TagBinary:
		return "binary"
	case TagObjectID:
		return "objectId"
	case TagBoolean:
		return "bool"
	case TagDate:
		return "date"
	case TagNull:
		return "null"
	case TagRegex:
		return "regex"
	case TagCode:
		return "code"
	}
	return "unknown"
}

// Classify returns the kind of v. Anything that is not one of the known
// kinds is an object.
func Classify(v any) Tag {
	switch v.(type) {
	case nil:
		return TagNull
	case string:
		return TagString
	case bool:
		return TagBoolean
	case *Array, []any:
		return TagArray
	case *Regex, *regexp.Regexp:
		return TagRegex
	case Code:
		return TagCode
	case time.Time:
		return TagDate
	case Binary, []byte:
		return TagBinary
	case ObjectID:
		return TagObjectID
	}
	if IsNumber(v) {
		return TagNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func:
		return TagCode
	case reflect.Slice, reflect.Array:
		return TagArray
	}
	return TagObject
}

// IsIndexable reports whether a keypath segment can traverse v, meaning v is
// an array or a plain document.
func IsIndexable(v any) bool {
	switch v.(type) {
	case *Document, *Array:
		return true
	}
	return false
}

// Rank returns the position of a kind in the cross-type sort order:
// null, numbers, strings, objects, arrays, binary, object ids, booleans,
// dates, regular expressions, code.
func Rank(t Tag) int {
	switch t {
	case TagNull:
		return 0
	case TagNumber:
		return 1
	case TagString:
		return 2
	case TagObject:
		return 3
	case TagArray:
		return 4
	case TagBinary:
		return 5
	case TagObjectID:
		return 6
	case TagBoolean:
		return 7
	case TagDate:
		return 8
	case TagRegex:
		return 9
	case TagCode:
		return 100
	}
	return -1
}
