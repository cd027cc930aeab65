package xsbe

import (
	"encoding/xml"

	"github.com/couling/xsbe/scalar"
	"github.com/couling/xsbe/value"
)

// schemaNS is the XSBE reserved namespace: schema-meta attributes and
// elements live here.
const schemaNS = "http://xsbe.couling.uk"

var (
	nameSchema    = xml.Name{Space: schemaNS, Local: "schema-by-example"}
	nameRoot      = xml.Name{Space: schemaNS, Local: "root"}
	attrName      = xml.Name{Space: schemaNS, Local: "name"}
	attrDefault   = xml.Name{Space: schemaNS, Local: "default"}
	attrType      = xml.Name{Space: schemaNS, Local: "type"}
	attrValueFrom = xml.Name{Space: schemaNS, Local: "value-from"}
)

const (
	typeOptional  = "optional"
	typeMandatory = "mandatory"
	typeRepeating = "repeating"
	typeFlatten   = "flatten"
)

// NodeKind distinguishes the two flavors a compiled schema node can
// take. The set is closed; every NodeTransformer method switches on it
// rather than relying on an interface method table.
type NodeKind int

const (
	// ElementKind nodes carry child node transformers keyed by name.
	ElementKind NodeKind = iota
	// TextKind nodes carry a scalar coder for their body (or for a
	// named attribute, when ValueFrom is set).
	TextKind
)

// A NodeTransformer is one compiled schema node. It is built once by
// the compiler and never mutated afterward; every field is safe to
// read concurrently from any number of decode/encode calls.
type NodeTransformer struct {
	Kind NodeKind

	// NodeName is the qualified name expected on the corresponding XML
	// element.
	NodeName xml.Name
	// ResultName is the key this node's decoded value appears under in
	// its parent's mapping.
	ResultName string

	IsOptional  bool
	IsRepeating bool
	Flatten     bool

	HasDefault bool
	Default    value.Value

	// Attrs holds one scalar coder per non-XSBE attribute declared on
	// the schema element, keyed by the attribute's qualified name.
	Attrs map[xml.Name]scalar.Coder

	// Children holds one NodeTransformer per schema child element,
	// keyed by its NodeName. Only populated for ElementKind nodes.
	Children map[xml.Name]*NodeTransformer
	// ChildOrder preserves schema-declaration order, needed so Encode
	// appends children in the order 4.7 specifies.
	ChildOrder []xml.Name

	// Coder is the scalar codec for a TextKind node's body (or, when
	// ValueFrom is set, for the named attribute's value). Unused for
	// ElementKind nodes.
	Coder scalar.Coder
	// ValueFrom, when non-empty Local, names the attribute (matched by
	// bare local name, see SPEC_FULL.md) that supplies this text node's
	// value instead of its body text.
	ValueFrom xml.Name
}

// A Document pins the expected root qname to the root node transformer
// produced by the compiler.
type Document struct {
	RootName xml.Name
	Root     *NodeTransformer
}
