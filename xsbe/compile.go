package xsbe

import (
	"encoding/xml"
	"fmt"

	"github.com/couling/xsbe/scalar"
	"github.com/couling/xsbe/xmltree"
)

// Compile walks an example schema tree and produces a read-only
// Document transformer. schema may be in either of two envelope forms:
// the full form, rooted at {XSBE}schema-by-example containing exactly
// one {XSBE}root wrapping the single example element; or the lite form,
// where schema itself is that example element.
func Compile(schema *xmltree.Element, opts ...Option) (*Document, error) {
	var cfg Config
	cfg.Option(opts...)

	example, err := unwrapEnvelope(schema)
	if err != nil {
		return nil, err
	}

	root, err := compileNode(example, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.logf("xsbe: compiled schema rooted at %s", example.Name)
	return &Document{RootName: example.Name, Root: root}, nil
}

// unwrapEnvelope resolves which of the two schema envelope forms schema
// uses and returns the example root element either way.
func unwrapEnvelope(schema *xmltree.Element) (*xmltree.Element, error) {
	if schema.Name != nameSchema {
		// Lite form: the document itself is the example.
		return schema, nil
	}

	var found *xmltree.Element
	for _, child := range schema.ChildElements() {
		if child.Name != nameRoot {
			continue
		}
		if found != nil {
			return nil, newError(SchemaError, nameRoot)
		}
		rootChildren := child.ChildElements()
		if len(rootChildren) != 1 || len(child.Children) != 1 {
			return nil, wrapError(SchemaError, nameRoot,
				fmt.Errorf("%s must contain exactly one child element and no text", nameRoot))
		}
		found = rootChildren[0]
	}
	if found == nil {
		return nil, newError(MissingElement, nameRoot)
	}
	return found, nil
}

// compileNode classifies a single example element and recursively
// compiles it into a NodeTransformer, per spec.md §4.4.
func compileNode(elem *xmltree.Element, cfg *Config) (*NodeTransformer, error) {
	resultName := elem.Name.Local
	if v, ok := elem.Attr(schemaNS, "name"); ok {
		resultName = v
	}

	node := &NodeTransformer{
		NodeName:   elem.Name,
		ResultName: resultName,
		IsOptional: true,
	}

	var excludeAttr xml.Name
	var err error

	switch {
	case bodyIsText(elem):
		node.Kind = TextKind
		text, _ := elem.Text()
		node.Coder = scalar.NewCoder(scalar.Infer(text), resultName)

	case hasValueFrom(elem):
		local, _ := elem.Attr(schemaNS, "value-from")
		excludeAttr = xml.Name{Local: local}
		node.Kind = TextKind
		node.ValueFrom = excludeAttr
		literal, _ := elem.Attr("", local)
		node.Coder = scalar.NewCoder(scalar.Infer(literal), resultName)

	default:
		for _, c := range elem.Children {
			if !c.IsElement() {
				return nil, wrapError(SchemaError, elem.Name, errMixedTextContent)
			}
		}
		node.Kind = ElementKind
		node.Children = make(map[xml.Name]*NodeTransformer)
		for _, child := range elem.ChildElements() {
			childNode, err := compileNode(child, cfg)
			if err != nil {
				return nil, err
			}
			if _, dup := node.Children[childNode.NodeName]; dup {
				return nil, newError(SchemaError, childNode.NodeName)
			}
			node.Children[childNode.NodeName] = childNode
			node.ChildOrder = append(node.ChildOrder, childNode.NodeName)
		}
	}

	if err = attachAttributes(node, elem, excludeAttr); err != nil {
		return nil, err
	}

	if err = applyNodeType(node, elem); err != nil {
		return nil, err
	}

	if literal, ok := elem.Attr(schemaNS, "default"); ok {
		coder := node.Coder
		if node.Kind == ElementKind {
			// Element-nodes never carry a scalar default per spec.md;
			// the XSBE default attribute only applies to text-node
			// leaves (attribute coders never get one). Left unused
			// defensively.
			_ = coder
		} else {
			c, err := coder.WithDefault(literal)
			if err != nil {
				return nil, wrapError(BadScalar, node.NodeName, err)
			}
			node.Coder = c
			node.HasDefault = true
			node.Default = c.Default
		}
	}

	cfg.debugf("xsbe: compiled node %s -> result_name=%s kind=%v", node.NodeName, node.ResultName, node.Kind)
	return node, nil
}

// bodyIsText reports whether elem's sole content is a non-empty text
// chunk, the schema shape that compiles to a TextKind node reading its
// own body.
func bodyIsText(elem *xmltree.Element) bool {
	if len(elem.Children) != 1 {
		return false
	}
	return !elem.Children[0].IsElement()
}

func hasValueFrom(elem *xmltree.Element) bool {
	_, ok := elem.Attr(schemaNS, "value-from")
	return ok
}

// attachAttributes builds one scalar coder per non-XSBE attribute on
// elem, excluding the value-from source attribute (if any), per
// spec.md §4.4/§4.5.
func attachAttributes(node *NodeTransformer, elem *xmltree.Element, exclude xml.Name) error {
	for _, a := range elem.Attrs {
		if a.Name.Space == schemaNS {
			continue
		}
		if exclude.Local != "" && a.Name.Local == exclude.Local {
			continue
		}
		resultName := a.Name.Local
		if a.Name.Space != "" && a.Name.Space != elem.Name.Space {
			resultName = fmt.Sprintf("%s:%s", a.Name.Local, a.Name.Space)
		}
		if node.Attrs == nil {
			node.Attrs = make(map[xml.Name]scalar.Coder)
		}
		node.Attrs[a.Name] = scalar.NewCoder(scalar.Infer(a.Value), resultName)
	}
	return nil
}

// applyNodeType reads the XSBE type attribute (default "optional") and
// sets the corresponding multiplicity/flatten flag.
func applyNodeType(node *NodeTransformer, elem *xmltree.Element) error {
	nodeType, ok := elem.Attr(schemaNS, "type")
	if !ok {
		nodeType = typeOptional
	}
	switch nodeType {
	case typeOptional:
	case typeMandatory:
		node.IsOptional = false
	case typeRepeating:
		node.IsRepeating = true
	case typeFlatten:
		node.Flatten = true
	default:
		return wrapError(SchemaError, node.NodeName, fmt.Errorf("unknown node type %q", nodeType))
	}
	return nil
}
