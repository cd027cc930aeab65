package xsbe

import (
	"os"

	"github.com/couling/xsbe/value"
	"github.com/couling/xsbe/xmltree"
)

// CompileFile reads the schema document at path and compiles it, per
// spec.md §6's convenience-wrapper allowance. Intended use mirrors
// compile-once-reuse-many: call this once at startup and share the
// returned Document across any number of concurrent decode/encode
// calls (see §5).
func CompileFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CompileBytes(data, opts...)
}

// CompileBytes compiles a schema document held in memory.
func CompileBytes(schema []byte, opts ...Option) (*Document, error) {
	tree, err := xmltree.Parse(schema)
	if err != nil {
		return nil, err
	}
	return Compile(tree, opts...)
}

// CompileString is CompileBytes for an in-memory string.
func CompileString(schema string, opts ...Option) (*Document, error) {
	tree, err := xmltree.ParseString(schema)
	if err != nil {
		return nil, err
	}
	return Compile(tree, opts...)
}

// DecodeBytes parses an XML document held in memory and decodes it
// against dt.
func DecodeBytes(dt *Document, doc []byte, opts ...Option) (value.Value, error) {
	tree, err := xmltree.Parse(doc)
	if err != nil {
		return nil, err
	}
	return DecodeFromXML(dt, tree, opts...)
}

// DecodeString is DecodeBytes for an in-memory string.
func DecodeString(dt *Document, doc string, opts ...Option) (value.Value, error) {
	tree, err := xmltree.ParseString(doc)
	if err != nil {
		return nil, err
	}
	return DecodeFromXML(dt, tree, opts...)
}

// EncodeBytes encodes v against dt and serializes the result to XML.
func EncodeBytes(dt *Document, v value.Value, opts ...Option) ([]byte, error) {
	tree, err := EncodeToXML(dt, v, opts...)
	if err != nil {
		return nil, err
	}
	return xmltree.Marshal(tree)
}

// EncodeString is EncodeBytes returning a string.
func EncodeString(dt *Document, v value.Value, opts ...Option) (string, error) {
	data, err := EncodeBytes(dt, v, opts...)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
