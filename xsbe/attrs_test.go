package xsbe

import (
	"testing"

	"github.com/couling/xsbe/value"
)

func TestUnexpectedAttributeRejected(t *testing.T) {
	dt := mustCompile(t, `<value id="1">27</value>`)

	_, err := DecodeString(dt, `<value id="1" extra="x">27</value>`)
	if err == nil {
		t.Fatal("expected UnexpectedAttribute")
	}
	xerr, ok := err.(*Error)
	if !ok || xerr.Kind != UnexpectedAttribute {
		t.Fatalf("got %v, want UnexpectedAttribute", err)
	}
}

func TestAttributeOmittedWhenAbsentWithoutDefault(t *testing.T) {
	// Attribute coders don't carry an xsbe:default (there's no XSBE
	// per-attribute default directive), so HasDefault starts false; a
	// missing optional attribute simply omits the key.
	dt := mustCompile(t, `<value id="1">27</value>`)

	got, err := DecodeString(dt, `<value>27</value>`)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := got.(value.Map)
	if !ok {
		t.Fatalf("expected a mapping, got %T", got)
	}
	if _, present := m["id"]; present {
		t.Fatalf("expected id to be absent, got %v", m)
	}
	if v := m[value.ValueKey]; v != value.Int(27) {
		t.Fatalf("#value = %v, want 27", v)
	}
}

func TestAttributesEncodeDirection(t *testing.T) {
	dt := mustCompile(t, `<value id="1">27</value>`)

	out, err := EncodeString(dt, value.Map{"id": value.Int(9), value.ValueKey: value.Int(100)})
	if err != nil {
		t.Fatal(err)
	}
	if got := out; len(got) == 0 {
		t.Fatal("expected non-empty encoded output")
	}
}
