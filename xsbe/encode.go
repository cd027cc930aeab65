package xsbe

import (
	"errors"

	"github.com/couling/xsbe/value"
	"github.com/couling/xsbe/xmltree"
)

// EncodeToXML builds an XML element tree from v, the dual of
// DecodeFromXML, per spec.md §4.7.
func EncodeToXML(dt *Document, v value.Value, opts ...Option) (*xmltree.Element, error) {
	var cfg Config
	cfg.Option(opts...)
	return dt.Root.encode(v, &cfg)
}

func (n *NodeTransformer) encode(v value.Value, cfg *Config) (*xmltree.Element, error) {
	switch n.Kind {
	case TextKind:
		return n.encodeText(v, cfg)
	default:
		return n.encodeElement(v, cfg)
	}
}

func (n *NodeTransformer) encodeText(v value.Value, cfg *Config) (*xmltree.Element, error) {
	elem := &xmltree.Element{Name: n.NodeName}

	scalarValue := v
	var attrSource value.Map
	if len(n.Attrs) > 0 {
		m, ok := v.(value.Map)
		if !ok {
			return nil, &Error{Kind: TypeError, Name: n.NodeName, Err: errExpectedMap}
		}
		attrSource = m
		scalarValue = m[value.ValueKey]
	}

	text, err := n.Coder.Encode(scalarValue)
	if err != nil {
		return nil, wrapError(TypeError, n.NodeName, err)
	}

	if n.ValueFrom.Local != "" {
		elem.SetAttr("", n.ValueFrom.Local, text)
	} else {
		elem.Children = []xmltree.Child{{Text: text}}
	}

	if err := encodeAttributes(elem, n, attrSource); err != nil {
		return nil, err
	}
	return elem, nil
}

func (n *NodeTransformer) encodeElement(v value.Value, cfg *Config) (*xmltree.Element, error) {
	m, ok := v.(value.Map)
	if !ok {
		return nil, &Error{Kind: TypeError, Name: n.NodeName, Err: errExpectedMap}
	}

	elem := &xmltree.Element{Name: n.NodeName}

	for _, name := range n.ChildOrder {
		child := n.Children[name]

		switch {
		case child.IsRepeating:
			raw, present := m[child.ResultName]
			if !present {
				raw = value.List{}
			}
			list, ok := raw.(value.List)
			if !ok {
				return nil, &Error{Kind: TypeError, Name: child.NodeName, ResultName: child.ResultName, Err: errExpectedList}
			}
			for _, item := range list {
				encoded, err := child.encode(item, cfg)
				if err != nil {
					return nil, err
				}
				elem.Children = append(elem.Children, xmltree.Child{Elem: encoded})
			}

		case child.Flatten:
			encoded, err := child.encode(m, cfg)
			if err != nil {
				return nil, err
			}
			elem.Children = append(elem.Children, xmltree.Child{Elem: encoded})

		default:
			childValue, present := m[child.ResultName]
			if !present {
				if child.IsOptional {
					if !child.HasDefault {
						continue
					}
					childValue = child.Default
				} else {
					return nil, newError(MissingElement, child.NodeName)
				}
			}
			if value.IsNull(childValue) {
				continue
			}
			encoded, err := child.encode(childValue, cfg)
			if err != nil {
				return nil, err
			}
			elem.Children = append(elem.Children, xmltree.Child{Elem: encoded})
		}
	}

	if err := encodeAttributes(elem, n, m); err != nil {
		return nil, err
	}
	return elem, nil
}

// encodeAttributes implements spec.md §4.5's encode direction: each
// declared attribute coder contributes a value when present, else its
// default when non-null, else is omitted.
func encodeAttributes(elem *xmltree.Element, n *NodeTransformer, m value.Map) error {
	for name, coder := range n.Attrs {
		var raw value.Value
		var has bool
		if m != nil {
			raw, has = m[coder.ResultName]
		}
		if !has {
			if !coder.HasDefault {
				continue
			}
			raw = coder.Default
		}
		text, err := coder.Encode(raw)
		if err != nil {
			return wrapError(TypeError, name, err)
		}
		elem.SetAttr(name.Space, name.Local, text)
	}
	return nil
}

var (
	errExpectedMap  = errors.New("expected a mapping value")
	errExpectedList = errors.New("expected a list value for a repeating element")
)
