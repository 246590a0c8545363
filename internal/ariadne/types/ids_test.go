package types

import "testing"

func TestNewSymbolId_StableAndDistinct(t *testing.T) {
	a1 := NewSymbolId(DefFunction, "a.js", 3, 1, "greet")
	a2 := NewSymbolId(DefFunction, "a.js", 3, 1, "greet")
	if a1 != a2 {
		t.Fatalf("SymbolId must be stable across re-derivation: %q != %q", a1, a2)
	}

	variants := []SymbolId{
		NewSymbolId(DefMethod, "a.js", 3, 1, "greet"),       // different kind
		NewSymbolId(DefFunction, "b.js", 3, 1, "greet"),     // different file
		NewSymbolId(DefFunction, "a.js", 4, 1, "greet"),     // different line
		NewSymbolId(DefFunction, "a.js", 3, 2, "greet"),     // different column
		NewSymbolId(DefFunction, "a.js", 3, 1, "greetings"), // different name
	}
	for _, v := range variants {
		if v == a1 {
			t.Fatalf("expected distinct SymbolId, got collision: %q", v)
		}
	}
}

func TestNewScopeId_Readable(t *testing.T) {
	id := NewScopeId(ScopeFunction, "a.js", 1, 0, 5, 1)
	want := ScopeId("function:a.js:1:0:5:1")
	if id != want {
		t.Fatalf("ScopeId = %q, want %q (scope ids are left un-hashed by design)", id, want)
	}
}

func TestTypeId_RoundTripsNameAndFile(t *testing.T) {
	id := NewTypeId("Animal", "animals.js")
	if got := id.Name(); got != "Animal" {
		t.Fatalf("Name() = %q, want %q", got, "Animal")
	}
	if got := id.File(); got != "animals.js" {
		t.Fatalf("File() = %q, want %q", got, "animals.js")
	}
}

func TestLocation_Contains(t *testing.T) {
	outer := Location{FilePath: "a.js", StartLine: 1, StartCol: 1, EndLine: 10, EndCol: 1}
	inner := Location{FilePath: "a.js", StartLine: 2, StartCol: 1, EndLine: 3, EndCol: 1}
	other := Location{FilePath: "b.js", StartLine: 2, StartCol: 1, EndLine: 3, EndCol: 1}

	if !outer.Contains(inner) {
		t.Fatal("outer should contain inner")
	}
	if outer.Contains(other) {
		t.Fatal("Contains must not cross files")
	}
	if inner.Contains(outer) {
		t.Fatal("inner must not contain the wider outer span")
	}
}
