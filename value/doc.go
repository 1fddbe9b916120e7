// Package value implements the document model: ordered documents, arrays and
// the leaf kinds they hold, together with the type-aware primitives every
// update operator relies on.
//
// # Data Model
//
// A [Document] is an ordered mapping from field names to values; an [Array]
// is an ordered sequence. Both are reference types, so writing through a
// resolved path changes the tree the path was resolved in. Leaf values are
// nil (null), bool, numbers (float64 is canonical, every Go numeric kind is
// accepted), string, time.Time (date), [Binary], [ObjectID], [*Regex] and
// [Code].
//
// Build literals with [D] and [A]:
//
//	doc := value.D(
//	    "name", "widget",
//	    "tags", value.A("a", "b"),
//	    "dims", value.D("w", 2.0, "h", 3.0),
//	)
//
// # Ordering and Equality
//
// [Compare] implements the cross-type order (see [Rank]) used by $min, $max
// and sorted $push. [EqualOrdered] is the field-order-sensitive equality the
// operators use; [Equal] ignores field order. [Clone] produces a deep copy.
//
// # Codecs
//
// [ParseJSON], [ParseYAML] and [Parse] decode text into the model, keeping
// field order. [Document.MarshalJSON] and [Document.MarshalYAML] write it
// back out. Leaf kinds without a native encoding use extended forms such as
// {"$date": 1700000000000}; both parsers read them back.
package value
