// Package xmltree converts XML documents into a minimal tree of elements,
// attributes, and text, suitable for driving a schema-by-example transform.
//
// The xmltree package provides the fixed external interface that the rest
// of this module is built against: a parser that strips comments, xmlns
// declarations, and xsi:* attributes while preserving fully-qualified names
// for everything else, and a serializer that regenerates namespace prefixes
// from scratch on every encode.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const recursionLimit = 3000

var errDeepXML = fmt.Errorf("xmltree: xml document too deeply nested")

// xsiNS is the XML Schema Instance namespace. Attributes in this
// namespace (xsi:type, xsi:nil, xsi:schemaLocation, ...) never appear on
// the in-memory tree.
const xsiNS = "http://www.w3.org/2001/XMLSchema-instance"

// An Element is a single element in an XML document: a qualified name,
// its non-meta attributes, and an ordered list of children. A child is
// either a nested Element or a run of character data; per the invariant
// in spec.md §3, a conformant document has either all-Element children
// (plus whitespace-only text, which is dropped) or a single Child holding
// text.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []Child
}

// A Child is one entry in an Element's content: exactly one of Elem or
// Text is meaningful, distinguished by IsElement.
type Child struct {
	Elem *Element
	Text string
}

// IsElement reports whether this child is a nested element, as opposed
// to a run of character data.
func (c Child) IsElement() bool { return c.Elem != nil }

// Attr returns the value of the first attribute matching space and
// local, and whether it was found. If space is empty, only local names
// are compared.
func (e *Element) Attr(space, local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local != local {
			continue
		}
		if space == "" || space == a.Name.Space {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr adds or replaces an attribute on the element.
func (e *Element) SetAttr(space, local, value string) {
	for i, a := range e.Attrs {
		if a.Name.Local == local && (space == "" || a.Name.Space == space) {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Space: space, Local: local}, Value: value})
}

// Text returns the element's sole text child, and whether it has one.
// An element with zero children, or whose only children are other
// elements, returns ("", false).
func (e *Element) Text() (string, bool) {
	if len(e.Children) == 1 && !e.Children[0].IsElement() {
		return e.Children[0].Text, true
	}
	return "", false
}

// ChildElements returns just the element-shaped children, in document
// order, discarding any interleaved text children.
func (e *Element) ChildElements() []*Element {
	var result []*Element
	for i := range e.Children {
		if e.Children[i].IsElement() {
			result = append(result, e.Children[i].Elem)
		}
	}
	return result
}

// Parse reads an entire XML document from data and returns its root
// Element. Comments, xmlns declarations, and xsi:* attributes are
// stripped; all other qualified names are resolved and preserved.
func Parse(data []byte) (*Element, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseString is like Parse but reads from a string.
func ParseString(doc string) (*Element, error) {
	return ParseReader(strings.NewReader(doc))
}

// ParseReader reads an entire XML document from r and returns its root
// Element. Non-UTF-8 documents that declare their encoding are
// transcoded automatically, which matters for consuming external feeds
// (RSS, Atom) that frequently declare legacy encodings.
func ParseReader(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("xmltree: no root element found")
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			el := &Element{}
			if err := el.parse(d, start, 0); err != nil {
				return nil, err
			}
			return el, nil
		}
	}
}

func (e *Element) parse(d *xml.Decoder, start xml.StartElement, depth int) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	e.Name = start.Name
	e.Attrs = filterAttrs(start.Attr)

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			child := &Element{}
			startCopy := tok.Copy()
			if err := child.parse(d, startCopy, depth+1); err != nil {
				return err
			}
			e.Children = append(e.Children, Child{Elem: child})
		case xml.EndElement:
			return nil
		case xml.CharData:
			if text := string(tok); strings.TrimSpace(text) != "" {
				e.Children = append(e.Children, Child{Text: text})
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			// dropped: not part of the in-memory tree
		}
	}
}

// filterAttrs removes xmlns declarations and xsi:* attributes, leaving
// every other attribute's qualified name and value intact.
func filterAttrs(attrs []xml.Attr) []xml.Attr {
	var result []xml.Attr
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		if a.Name.Space == xsiNS {
			continue
		}
		result = append(result, a)
	}
	return result
}

// Equal reports whether two Elements represent the same document,
// ignoring attribute order, namespace prefixes (which are not represented
// here in the first place), and leading/trailing whitespace in text
// content. Children are compared in order.
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name {
		return false
	}
	if !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		ca, cb := a.Children[i], b.Children[i]
		if ca.IsElement() != cb.IsElement() {
			return false
		}
		if ca.IsElement() {
			if !Equal(ca.Elem, cb.Elem) {
				return false
			}
		} else if strings.TrimSpace(ca.Text) != strings.TrimSpace(cb.Text) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b []xml.Attr) bool {
	if len(a) != len(b) {
		return false
	}
	index := make(map[xml.Name]string, len(a))
	for _, attr := range a {
		index[attr.Name] = attr.Value
	}
	for _, attr := range b {
		v, ok := index[attr.Name]
		if !ok || v != attr.Value {
			return false
		}
	}
	return true
}
