package util

import (
	"bytes"
	"reflect"
	"testing"
)

func TestEnumSet(t *testing.T) {
	e := NewEnumSet(2)
	cases := []struct {
		value string
		index int
		added bool
	}{{"a", 0, true}, {"b", 1, true}, {"a", 0, false}, {"c", 2, true}}
	for _, c := range cases {
		index, added := e.Add(c.value)
		if index != c.index || added != c.added {
			t.Errorf("Add(%s) got %d %v expected %d %v", c.value, index, added, c.index, c.added)
		}
	}
	if e.Len() != 3 || e.ValueOf(2) != "c" {
		t.Errorf("Got %v", e.Values())
	}
	if index, exists := e.IndexOf("b"); !exists || index != 1 {
		t.Errorf("IndexOf(b) got %d %v", index, exists)
	}
	if _, exists := e.IndexOf("z"); exists {
		t.Error("IndexOf(z) should not exist")
	}
	copied := e.Copy()
	copied.Add("d")
	if e.Len() != 3 || copied.Len() != 4 {
		t.Errorf("Copy shares storage: %d %d", e.Len(), copied.Len())
	}
	var buf bytes.Buffer
	if err := e.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "0: a\n1: b\n2: c\n" {
		t.Errorf("Got %q", buf.String())
	}
}

func TestEnumSetRebuildIndex(t *testing.T) {
	e := NewEnumSet(0)
	e.Enum = map[string]int{"x": 1, "y": 0}
	e.RebuildIndex()
	if !reflect.DeepEqual(e.Values(), []string{"y", "x"}) {
		t.Errorf("Got %v", e.Values())
	}
}

func TestFrozenEnumSetPanics(t *testing.T) {
	e := NewEnumSet(0)
	e.Frozen = true
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic adding to a frozen set")
		}
	}()
	e.Add("a")
}

func TestPrefix(t *testing.T) {
	if p := Prefix("שלום", 2); p != "של" {
		t.Errorf("Got %s", p)
	}
	if p := Prefix("ab", 5); p != "ab" {
		t.Errorf("Got %s", p)
	}
}
