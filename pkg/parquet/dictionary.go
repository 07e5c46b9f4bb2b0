package parquet

import (
	"reflect"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/encoding"
)

// DictionarySchema returns a copy of schema where every leaf column eligible
// for dictionary encoding uses the encoding selected by cfg.
//
// Column order, nesting, repetition and logical types are preserved. When
// dictionary encoding is disabled the schema is returned unchanged.
func DictionarySchema(schema *parquet.Schema, cfg WriterConfig) *parquet.Schema {
	enc := cfg.DictionaryEncoding()
	if enc == nil {
		return schema
	}
	return parquet.NewSchema(schema.Name(), dictionaryNode(schema, enc))
}

// DictionaryEligible reports whether the leaf node can be dictionary encoded.
// Boolean columns are never dictionary encoded.
func DictionaryEligible(node parquet.Node) bool {
	return node.Leaf() && node.Type().Kind() != parquet.Boolean
}

func dictionaryNode(node parquet.Node, enc encoding.Encoding) parquet.Node {
	if node.Leaf() {
		if !DictionaryEligible(node) {
			return node
		}
		return parquet.Encoded(node, enc)
	}
	fields := node.Fields()
	group := &orderedGroup{
		Node:   node,
		fields: make([]parquet.Field, len(fields)),
	}
	for i, f := range fields {
		group.fields[i] = &orderedField{
			Node:  dictionaryNode(f, enc),
			field: f,
		}
	}
	return group
}

// orderedGroup overrides the fields of a group node while keeping their
// original order. parquet.Group sorts its fields by name, which would reorder
// the columns of the rewritten file.
type orderedGroup struct {
	parquet.Node
	fields []parquet.Field
}

func (g *orderedGroup) Fields() []parquet.Field { return g.fields }

type orderedField struct {
	parquet.Node
	field parquet.Field
}

func (f *orderedField) Name() string { return f.field.Name() }

func (f *orderedField) Value(base reflect.Value) reflect.Value { return f.field.Value(base) }
