// Package manifest reads, patches and writes package.json files.
//
// Templates commonly carry hand-edited manifests, so loading is JSONC
// tolerant: github.com/tidwall/jsonc strips comments and trailing commas
// before parsing. The parsed document is validated against an embedded JSON
// schema covering the fields this tool reads or writes.
//
// Fields are read with github.com/tidwall/gjson and written in place with
// github.com/tidwall/sjson, so every field of the original manifest keeps its
// position and, as long as only existing values change, the file keeps its
// formatting byte for byte. When comments had to be stripped or a key is
// added, the document is re-indented with github.com/tidwall/pretty using
// the indentation the file already had.
package manifest
