package value

import (
	"testing"
	"time"
)

func TestEqualScalars(t *testing.T) {
	cases := []struct {
		a, b  Value
		equal bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{Int(1), Float(1), false},
		{String("a"), String("a"), true},
		{Bool(true), Bool(false), false},
		{Null{}, Null{}, true},
		{nil, Null{}, true},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.equal {
			t.Errorf("Equal(%#v, %#v) = %v, want %v", c.a, c.b, got, c.equal)
		}
	}
}

func TestEqualTimeIgnoresZoneRepresentation(t *testing.T) {
	utc := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	plusFour, _ := time.Parse(time.RFC3339, "2020-12-31T04:00:00+04:00")
	if !Equal(Time(utc), Time(plusFour)) {
		t.Fatal("expected Equal to treat equivalent instants as equal regardless of zone")
	}
}

func TestEqualList(t *testing.T) {
	a := List{Int(1), String("x")}
	b := List{Int(1), String("x")}
	c := List{Int(1), String("y")}
	if !Equal(a, b) {
		t.Fatal("expected equal lists to compare equal")
	}
	if Equal(a, c) {
		t.Fatal("expected differing lists to compare unequal")
	}
}

func TestEqualMap(t *testing.T) {
	a := Map{"id": Int(21), ValueKey: String("Alan")}
	b := Map{"id": Int(21), ValueKey: String("Alan")}
	c := Map{"id": Int(22), ValueKey: String("Alan")}
	if !Equal(a, b) {
		t.Fatal("expected equal maps to compare equal")
	}
	if Equal(a, c) {
		t.Fatal("expected differing maps to compare unequal")
	}
}

func TestIsNull(t *testing.T) {
	if !IsNull(nil) || !IsNull(Null{}) {
		t.Fatal("expected nil and Null{} to both report IsNull")
	}
	if IsNull(Int(0)) {
		t.Fatal("zero value is not null")
	}
}
