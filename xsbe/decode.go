package xsbe

import (
	"strings"

	"github.com/couling/xsbe/value"
	"github.com/couling/xsbe/xmltree"
)

// DecodeFromXML parses root against dt and returns the decoded value
// tree, per spec.md §4.2/§4.3.
func DecodeFromXML(dt *Document, root *xmltree.Element, opts ...Option) (value.Value, error) {
	var cfg Config
	cfg.Option(opts...)

	if root.Name != dt.RootName {
		return nil, &Error{Kind: IncorrectRoot, Name: root.Name, ResultName: dt.RootName.Local}
	}
	return dt.Root.decode(root, &cfg)
}

func (n *NodeTransformer) decode(elem *xmltree.Element, cfg *Config) (value.Value, error) {
	switch n.Kind {
	case TextKind:
		return n.decodeText(elem, cfg)
	default:
		return n.decodeElement(elem, cfg)
	}
}

// decodeText implements the text-node decode direction, spec.md §4.2.
func (n *NodeTransformer) decodeText(elem *xmltree.Element, cfg *Config) (value.Value, error) {
	var raw string
	var isNull = true

	if n.ValueFrom.Local != "" {
		if len(elem.Children) > 0 && !cfg.ignoreUnexpected {
			first := elem.Children[0]
			if first.IsElement() {
				return nil, newError(UnexpectedElement, first.Elem.Name)
			}
			return nil, wrapError(SchemaError, n.NodeName, errTextWhereValueFromExpected)
		}
		v, ok := elem.Attr("", n.ValueFrom.Local)
		if ok {
			raw, isNull = v, false
		}
	} else if len(elem.Children) > 0 {
		if len(elem.Children) > 1 || elem.Children[0].IsElement() {
			for _, c := range elem.Children {
				if c.IsElement() {
					return nil, newError(UnexpectedElement, c.Elem.Name)
				}
			}
			return nil, wrapError(SchemaError, n.NodeName, errMixedTextContent)
		}
		trimmed := strings.TrimSpace(elem.Children[0].Text)
		if trimmed != "" {
			raw, isNull = trimmed, false
		}
	}

	var decoded value.Value
	if isNull {
		if n.IsOptional {
			if n.HasDefault {
				decoded = n.Default
			} else {
				decoded = value.Null{}
			}
		} else {
			return nil, newError(MissingElement, n.NodeName)
		}
	} else {
		v, err := n.Coder.Decode(raw)
		if err != nil {
			return nil, wrapError(BadScalar, n.NodeName, err)
		}
		decoded = v
	}

	if len(n.Attrs) > 0 {
		attrs, err := decodeAttributes(n, elem, cfg)
		if err != nil {
			return nil, err
		}
		attrs[value.ValueKey] = decoded
		return attrs, nil
	}
	return decoded, nil
}

// decodeElement implements the element-node decode direction, spec.md
// §4.3.
func (n *NodeTransformer) decodeElement(elem *xmltree.Element, cfg *Config) (value.Value, error) {
	result := make(value.Map)
	for _, name := range n.ChildOrder {
		if n.Children[name].IsRepeating {
			result[n.Children[name].ResultName] = value.List{}
		}
	}

	for _, c := range elem.Children {
		if !c.IsElement() {
			continue
		}
		child := c.Elem
		childTransformer, ok := n.Children[child.Name]
		if !ok {
			if cfg.ignoreUnexpected {
				continue
			}
			return nil, newError(UnexpectedElement, child.Name)
		}

		decoded, err := childTransformer.decode(child, cfg)
		if err != nil {
			return nil, err
		}

		switch {
		case childTransformer.IsRepeating:
			list := result[childTransformer.ResultName].(value.List)
			result[childTransformer.ResultName] = append(list, decoded)
		case childTransformer.Flatten:
			m, ok := decoded.(value.Map)
			if !ok {
				return nil, wrapError(SchemaError, child.Name, errFlattenNotMap)
			}
			for k, v := range m {
				result[k] = v
			}
		default:
			if _, dup := result[childTransformer.ResultName]; dup {
				return nil, &Error{Kind: DuplicateElement, Name: child.Name, ResultName: childTransformer.ResultName}
			}
			result[childTransformer.ResultName] = decoded
		}
	}

	for _, name := range n.ChildOrder {
		child := n.Children[name]
		if child.Flatten {
			continue
		}
		v, present := result[child.ResultName]
		if !present {
			if child.IsOptional {
				if child.HasDefault {
					result[child.ResultName] = child.Default
				}
				continue
			}
			return nil, newError(MissingElement, child.NodeName)
		}
		if child.IsRepeating && !child.IsOptional {
			if list, ok := v.(value.List); ok && len(list) == 0 {
				return nil, newError(MissingElement, child.NodeName)
			}
		}
	}

	if len(n.Attrs) > 0 {
		attrs, err := decodeAttributes(n, elem, cfg)
		if err != nil {
			return nil, err
		}
		for k, v := range attrs {
			result[k] = v
		}
	}

	return result, nil
}

// decodeAttributes implements spec.md §4.5's decode direction.
func decodeAttributes(n *NodeTransformer, elem *xmltree.Element, cfg *Config) (value.Map, error) {
	result := make(value.Map)
	for _, a := range elem.Attrs {
		coder, ok := n.Attrs[a.Name]
		if !ok {
			if cfg.ignoreUnexpected {
				continue
			}
			return nil, newError(UnexpectedAttribute, a.Name)
		}
		v, err := coder.Decode(a.Value)
		if err != nil {
			return nil, wrapError(BadScalar, a.Name, err)
		}
		result[coder.ResultName] = v
	}
	for _, coder := range n.Attrs {
		if _, present := result[coder.ResultName]; !present && coder.HasDefault {
			result[coder.ResultName] = coder.Default
		}
	}
	return result, nil
}
