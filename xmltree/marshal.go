package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
)

// xmlDeclaration is written at the start of every document Marshal
// produces.
const xmlDeclaration = `<?xml version='1.0' encoding='utf-8'?>`

// Marshal serializes an Element to XML, assigning fresh namespace prefixes
// as it walks the tree. Prefix fidelity with whatever document the Element
// was parsed from is never attempted: every call to Marshal starts the
// alphabetic prefix sequence over from "a".
func Marshal(e *Element) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	if err := Encode(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents nested elements with prefix
// and indent, in the manner of xml.MarshalIndent.
func MarshalIndent(e *Element, prefix, indent string) ([]byte, error) {
	data, err := Marshal(e)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	d := xml.NewDecoder(bytes.NewReader(data))
	enc := xml.NewEncoder(&out)
	enc.Indent(prefix, indent)
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if err := enc.EncodeToken(tok); err != nil {
			return nil, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Encode writes e to w, discovering namespaces in document order and
// assigning each a fresh prefix the first time it is seen: the element's
// own namespace, then its attributes' namespaces, then its children's,
// recursively. The empty namespace never gets a prefix.
func Encode(w *bytes.Buffer, e *Element) error {
	ns := newPrefixer()
	discoverNamespaces(e, ns)
	return writeElement(w, e, ns, true)
}

// prefixer assigns each namespace URI the next prefix in the sequence
// "a", "b", ..., "z", "aa", "ab", ... the first time it is requested, and
// returns the same prefix on every subsequent request for that URI.
type prefixer struct {
	assigned map[string]string
	next     int
}

func newPrefixer() *prefixer {
	return &prefixer{assigned: make(map[string]string)}
}

func (p *prefixer) prefixFor(uri string) string {
	if uri == "" {
		return ""
	}
	if prefix, ok := p.assigned[uri]; ok {
		return prefix
	}
	prefix := prefixSequence(p.next)
	p.next++
	p.assigned[uri] = prefix
	return prefix
}

// prefixSequence returns the n-th entry (0-indexed) of the infinite
// sequence a, b, ..., z, aa, ab, ..., zz, aaa, ...
func prefixSequence(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if n < 26 {
		return string(letters[n])
	}
	return prefixSequence(n/26-1) + string(letters[n%26])
}

// discoverNamespaces walks e in document order, registering each
// previously-unseen namespace URI with the prefixer: e's own name first,
// then its attributes' names, then each child, recursively.
func discoverNamespaces(e *Element, p *prefixer) {
	p.prefixFor(e.Name.Space)
	for _, a := range e.Attrs {
		p.prefixFor(a.Name.Space)
	}
	for _, c := range e.Children {
		if c.IsElement() {
			discoverNamespaces(c.Elem, p)
		}
	}
}

func writeElement(w *bytes.Buffer, e *Element, ns *prefixer, root bool) error {
	tag := qualify(ns, e.Name)
	fmt.Fprintf(w, "<%s", tag)

	if root {
		// Every namespace used anywhere in the document gets declared once,
		// on the root element, under its freshly assigned prefix.
		uris := make([]string, 0, len(ns.assigned))
		for uri := range ns.assigned {
			uris = append(uris, uri)
		}
		sort.Slice(uris, func(i, j int) bool { return ns.assigned[uris[i]] < ns.assigned[uris[j]] })
		for _, uri := range uris {
			fmt.Fprintf(w, ` xmlns:%s="%s"`, ns.assigned[uri], escapeAttr(uri))
		}
	}

	attrs := make([]xml.Attr, len(e.Attrs))
	copy(attrs, e.Attrs)
	sort.Slice(attrs, func(i, j int) bool {
		return qualify(ns, attrs[i].Name) < qualify(ns, attrs[j].Name)
	})
	for _, a := range attrs {
		fmt.Fprintf(w, ` %s="%s"`, qualify(ns, a.Name), escapeAttr(a.Value))
	}

	if len(e.Children) == 0 {
		fmt.Fprintf(w, "></%s>", tag)
		return nil
	}
	w.WriteString(">")
	for _, c := range e.Children {
		if c.IsElement() {
			if err := writeElement(w, c.Elem, ns, false); err != nil {
				return err
			}
		} else {
			w.WriteString(escapeText(c.Text))
		}
	}
	fmt.Fprintf(w, "</%s>", tag)
	return nil
}

func qualify(ns *prefixer, name xml.Name) string {
	prefix := ns.prefixFor(name.Space)
	if prefix == "" {
		return name.Local
	}
	return prefix + ":" + name.Local
}

func escapeText(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
