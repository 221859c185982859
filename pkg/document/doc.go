// Package document decodes tree documents into virtual nodes.
//
// A tree document is JSON or YAML describing a virtual tree as data:
//
//	{"tag": "ul", "props": {"class": "list"}, "children": [
//	    {"tag": "li", "key": "a", "children": ["first"]},
//	    {"component": "Counter", "props": {"start": 3}}
//	]}
//
// Strings and numbers become text nodes, null and booleans become empty
// text, arrays are flattened into the surrounding children. Objects with a
// "tag" are elements and objects with a "component" name a component from a
// Registry.
//
// Documents are read through a Source. FileSource reads local files and
// S3Source reads s3://bucket/key references. Loader picks the source by
// scheme and the format by extension.
package document
