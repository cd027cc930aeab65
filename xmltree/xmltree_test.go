package xmltree

import (
	"testing"
)

func TestParseSimple(t *testing.T) {
	doc := `<root attr="1"><child>hello</child></root>`
	el, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if el.Name.Local != "root" {
		t.Fatalf("root name = %q, want root", el.Name.Local)
	}
	if v, ok := el.Attr("", "attr"); !ok || v != "1" {
		t.Fatalf("attr = %q, %v; want 1, true", v, ok)
	}
	children := el.ChildElements()
	if len(children) != 1 || children[0].Name.Local != "child" {
		t.Fatalf("children = %v", children)
	}
	text, ok := children[0].Text()
	if !ok || text != "hello" {
		t.Fatalf("child text = %q, %v", text, ok)
	}
}

func TestParseNamespaces(t *testing.T) {
	doc := `<root xmlns="urn:a" xmlns:b="urn:b"><b:child b:x="1">text</b:child></root>`
	el, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if el.Name.Space != "urn:a" {
		t.Fatalf("root namespace = %q, want urn:a", el.Name.Space)
	}
	child := el.ChildElements()[0]
	if child.Name.Space != "urn:b" || child.Name.Local != "child" {
		t.Fatalf("child name = %+v", child.Name)
	}
	if v, ok := child.Attr("urn:b", "x"); !ok || v != "1" {
		t.Fatalf("child attr = %q, %v", v, ok)
	}
}

func TestParseStripsXsiAndXmlns(t *testing.T) {
	doc := `<root xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:type="string" id="5"/>`
	el, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(el.Attrs) != 1 || el.Attrs[0].Name.Local != "id" {
		t.Fatalf("attrs = %+v, want only id", el.Attrs)
	}
}

func TestParseDropsComments(t *testing.T) {
	doc := `<root><!-- a comment --><child/></root>`
	el, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(el.Children) != 1 {
		t.Fatalf("children = %+v, want exactly the child element", el.Children)
	}
}

func TestParseNoRootElement(t *testing.T) {
	if _, err := ParseString(`<?xml version="1.0"?>`); err == nil {
		t.Fatal("expected error for document with no root element")
	}
}

func TestTextVersusElementChildren(t *testing.T) {
	leaf, err := ParseString(`<leaf>value</leaf>`)
	if err != nil {
		t.Fatal(err)
	}
	if text, ok := leaf.Text(); !ok || text != "value" {
		t.Fatalf("Text() = %q, %v", text, ok)
	}

	branch, err := ParseString(`<branch><a/><b/></branch>`)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := branch.Text(); ok {
		t.Fatal("Text() should report false for an element-only node")
	}
}

func TestEqual(t *testing.T) {
	a, _ := ParseString(`<root a="1"><child>  text  </child></root>`)
	b, _ := ParseString(`<root a="1"><child>text</child></root>`)
	if !Equal(a, b) {
		t.Fatal("expected Equal to ignore surrounding whitespace in text nodes")
	}

	c, _ := ParseString(`<root a="2"><child>text</child></root>`)
	if Equal(a, c) {
		t.Fatal("expected Equal to notice differing attribute values")
	}
}

func TestSetAttr(t *testing.T) {
	el, _ := ParseString(`<root/>`)
	el.SetAttr("", "id", "1")
	if v, ok := el.Attr("", "id"); !ok || v != "1" {
		t.Fatalf("Attr after SetAttr = %q, %v", v, ok)
	}
	el.SetAttr("", "id", "2")
	if len(el.Attrs) != 1 {
		t.Fatalf("SetAttr should replace, not duplicate: %+v", el.Attrs)
	}
	if v, _ := el.Attr("", "id"); v != "2" {
		t.Fatalf("Attr after replace = %q, want 2", v)
	}
}
