// Package docmod applies MongoDB-style modifier documents to ordered,
// schemaless documents.
//
// A modifier is either a plain document, which replaces the target
// wholesale, or a set of update operators such as $set, $inc, $push and
// $pull, each keyed by dotted field paths:
//
//	{"$inc": {"stats.views": 1}, "$addToSet": {"tags": "go"}}
//
// # Packages
//
//   - value: the document model, cross-type ordering, equality, cloning and
//     the JSON/YAML codecs
//   - modifier: the update engine and its operator registry
//   - query: selectors used by $pull and sort specifications used by $push
//   - docerrors: structured errors for errors.Is and errors.As
//
// # Quick Start
//
//	doc, _ := value.ParseDocument([]byte(`{"_id": 1, "tags": ["a"]}`))
//	spec, _ := value.ParseDocument([]byte(`{"$push": {"tags": "b"}}`))
//
//	out, err := modifier.New().Modify(doc, spec)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out) // {"_id":1,"tags":["a","b"]}
//
// Modify never changes its inputs and returns a document that shares no
// structure with them. A failed call leaves no partial result behind.
//
// # Command Line
//
// The docmod command wraps the library:
//
//	docmod modify -d user.yaml update.json
//	docmod compare '[1, 2]' '{"a": 1}'
//	docmod mcp
//
// # Installation
//
//	go get github.com/erraggy/docmod
package docmod
