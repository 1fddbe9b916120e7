// Package modifier applies MongoDB-style modifier documents to documents.
//
// # Quick Start
//
// Apply a modifier using functional options:
//
//	result, err := modifier.ModifyWithOptions(
//	    modifier.WithDocumentFilePath("user.yaml"),
//	    modifier.WithSpecFilePath("update.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Document)
//
// Or use a reusable Modifier:
//
//	m := modifier.New()
//	out, err := m.Modify(doc, value.D(
//	    "$inc", value.D("stats.views", 1),
//	    "$push", value.D("tags", "new"),
//	))
//
// # Modifier Documents
//
// A modifier without '$' keys replaces the document. A modifier whose keys
// are all operators applies them in order, each to the dotted paths listed
// in its operand:
//
//	{"$set": {"profile.name": "Ada"}, "$unset": {"legacy": ""}}
//
// Mixing both kinds of keys is an error unless AllowMixedOperators is set.
//
// # Operators
//
//	$set $unset $inc $min $max $currentDate $setOnInsert $rename
//	$push $pushAll $addToSet $pop $pull $pullAll
//
// $bit is recognized and always rejected. $setOnInsert is accepted and does
// nothing; callers performing an upsert rewrite it to $set themselves.
// Additional operators can be plugged in with [NewRegistry] and
// [Registry.With].
//
// # Paths
//
// Paths are dotted field names. Numeric segments index arrays and a '$'
// segment takes its index from [ArrayIndices]. Missing intermediate
// documents are created, and arrays are padded with nulls when an index
// lies past the end. $unset, $pop, $pull, $pullAll and $rename never create
// structure; they do nothing when the path is absent.
//
// # Errors
//
// All failures are structured errors from package docerrors. The input
// document is never modified when an error is returned.
package modifier
