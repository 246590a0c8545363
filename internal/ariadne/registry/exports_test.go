package registry

import (
	"testing"

	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

func reexportDef(file types.FilePath, localName string) *types.Definition {
	return &types.Definition{
		SymbolId: types.NewSymbolId(types.DefImport, file, 1, 1, localName),
		Name:     localName,
		Kind:     types.DefImport,
		Import:   &types.ImportInfo{LocalName: localName, IsReexport: true},
	}
}

// ResolveExportChain must terminate on a two-hop re-export chain and land
// on the concrete, non-reexport definition.
func TestResolveExportChain_TwoHops(t *testing.T) {
	exports := NewExportRegistry()
	imports := NewImportGraph()

	original := &types.Definition{
		SymbolId:   types.NewSymbolId(types.DefFunction, "original.js", 2, 1, "doWork"),
		Name:       "doWork",
		Kind:       types.DefFunction,
		IsExported: true,
	}
	exports.AddFile("original.js", []*types.Definition{original})

	barrel := reexportDef("index.js", "doWork")
	exports.AddFile("index.js", []*types.Definition{barrel})
	imports.byFile["index.js"] = []ResolvedImport{{Definition: barrel, Target: "original.js", Resolved: true}}

	got, ok := exports.ResolveExportChain("index.js", "doWork", imports)
	if !ok {
		t.Fatal("expected the chain to resolve")
	}
	if got.SymbolId != original.SymbolId {
		t.Fatalf("resolved to %q, want the original definition %q", got.SymbolId, original.SymbolId)
	}
}

// A re-export cycle (a re-exports from b, b re-exports from a) must
// degrade to "unresolved" rather than recurse forever.
func TestResolveExportChain_CycleIsUnresolved(t *testing.T) {
	exports := NewExportRegistry()
	imports := NewImportGraph()

	aReexport := reexportDef("a.js", "thing")
	bReexport := reexportDef("b.js", "thing")
	exports.AddFile("a.js", []*types.Definition{aReexport})
	exports.AddFile("b.js", []*types.Definition{bReexport})
	imports.byFile["a.js"] = []ResolvedImport{{Definition: aReexport, Target: "b.js", Resolved: true}}
	imports.byFile["b.js"] = []ResolvedImport{{Definition: bReexport, Target: "a.js", Resolved: true}}

	_, ok := exports.ResolveExportChain("a.js", "thing", imports)
	if ok {
		t.Fatal("a re-export cycle must not resolve")
	}
}

// RemoveFile must drop only the removed file's export entries.
func TestExportRegistry_RemoveFileIsolated(t *testing.T) {
	exports := NewExportRegistry()
	a := &types.Definition{SymbolId: "a", Name: "a", Kind: types.DefFunction, IsExported: true}
	b := &types.Definition{SymbolId: "b", Name: "b", Kind: types.DefFunction, IsExported: true}
	exports.AddFile("a.js", []*types.Definition{a})
	exports.AddFile("b.js", []*types.Definition{b})

	exports.RemoveFile("a.js")

	if _, ok := exports.byFileAndName[exportKey("a.js", "a")]; ok {
		t.Fatal("a.js's export entry should be gone")
	}
	if _, ok := exports.byFileAndName[exportKey("b.js", "b")]; !ok {
		t.Fatal("b.js's export entry should survive a.js's removal")
	}
}
