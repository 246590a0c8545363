// This file implements §6's query surface: the read-only operations
// external collaborators (CLIs, MCP servers, analyzers) drive on top of
// a Project once it has been populated by UpdateFile/UpdateFiles. Every
// method here is a pure read over whatever registries currently hold;
// none of them mutate.
package project

import (
	"sort"

	"github.com/ariadne-lang/ariadne/internal/ariadne/callgraph"
	"github.com/ariadne-lang/ariadne/internal/ariadne/resolve"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// pointToLocation converts a 0-based Point into the degenerate
// single-point Location containsPoint expects, matching the
// Point/Location conventions §3 fixes (0-based points, 1-based,
// end-exclusive locations).
func pointToLocation(file types.FilePath, pt types.Point) types.Location {
	return types.Location{
		FilePath:  file,
		StartLine: pt.Row + 1,
		StartCol:  pt.Column + 1,
		EndLine:   pt.Row + 1,
		EndCol:    pt.Column + 1,
	}
}

// containsPoint reports whether loc spans the single-point location pt
// produces, honoring the end-exclusive column convention.
func containsPoint(loc types.Location, pt types.Location) bool {
	if loc.FilePath != pt.FilePath {
		return false
	}
	if pt.StartLine < loc.StartLine || pt.StartLine > loc.EndLine {
		return false
	}
	if pt.StartLine == loc.StartLine && pt.StartCol < loc.StartCol {
		return false
	}
	if pt.StartLine == loc.EndLine && pt.StartCol >= loc.EndCol {
		return false
	}
	return true
}

// definitionAtPoint returns the narrowest definition in file whose
// location spans point — "clicking" directly on a declaration jumps to
// itself rather than through a reference resolution.
func (p *Project) definitionAtPoint(file types.FilePath, point types.Point) (*types.Definition, bool) {
	pt := pointToLocation(file, point)
	var best *types.Definition
	for _, d := range p.definitions.ByFile(file) {
		if !containsPoint(d.Location, pt) {
			continue
		}
		if best == nil || narrower(d.Location, best.Location) {
			best = d
		}
	}
	return best, best != nil
}

// referenceAtPoint returns the reference in file whose name-site spans
// point, preferring the narrowest (most specific) span among overlapping
// captures (a call's name capture and its surrounding member-access
// capture can share a start position).
func (p *Project) referenceAtPoint(file types.FilePath, point types.Point) (*types.Reference, bool) {
	pt := pointToLocation(file, point)
	var best *types.Reference
	for _, ref := range p.references.ByFile(file) {
		if !containsPoint(ref.Location, pt) {
			continue
		}
		if best == nil || narrower(ref.Location, best.Location) {
			best = ref
		}
	}
	return best, best != nil
}

func narrower(a, b types.Location) bool {
	spanA := (a.EndLine-a.StartLine)*1_000_000 + (a.EndCol - a.StartCol)
	spanB := (b.EndLine-b.StartLine)*1_000_000 + (b.EndCol - b.StartCol)
	return spanA < spanB
}

// GoToDefinition implements §6's go_to_definition: given a cursor
// position, return the Definition it names. A point landing directly on
// a declaration resolves to itself; a point landing on a reference is
// resolved through C8 (non-call references) or C9 (call references),
// taking the first — highest-confidence — resolution when more than one
// exists (polymorphic call sites return every resolution through
// FindReferences' reverse direction instead; a single cursor position
// has one primary jump target by convention).
func (p *Project) GoToDefinition(path string, point types.Point) (*types.Definition, bool) {
	file := normalizePath(path)
	if d, ok := p.definitionAtPoint(file, point); ok {
		return d, true
	}
	ref, ok := p.referenceAtPoint(file, point)
	if !ok {
		return nil, false
	}
	if ref.Kind == types.RefCall {
		cr := resolve.ResolveCall(p.registries(), file, ref)
		if len(cr.Resolutions) == 0 {
			return nil, false
		}
		return p.definitions.Get(cr.Resolutions[0].SymbolId)
	}
	d, ok := resolve.ResolveName(p.registries(), file, ref.Name, ref.ScopeID)
	return d, ok
}

// GetDefinition implements §6's lookup-by-id half of the query surface
// (named get_definition(symbol_id) in §4.10's operation list).
func (p *Project) GetDefinition(id types.SymbolId) (*types.Definition, bool) {
	return p.definitions.Get(id)
}

// GetDefinitions implements §6's get_definitions(path).
func (p *Project) GetDefinitions(path string) []*types.Definition {
	return p.definitions.ByFile(normalizePath(path))
}

// FindReferences implements §6's find_references(symbol_id): every
// location anywhere in the project whose reference resolves to id. Call
// references consult the cached Phase 2 output; every other reference
// kind is resolved on demand through Phase 1, since only calls carry a
// standing resolution.
func (p *Project) FindReferences(id types.SymbolId) []types.Location {
	var out []types.Location
	seen := make(map[string]bool)
	add := func(loc types.Location) {
		key := loc.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, loc)
		}
	}

	for _, crs := range p.callRefs {
		for _, cr := range crs {
			for _, res := range cr.Resolutions {
				if res.SymbolId == id {
					add(cr.Location)
				}
			}
		}
	}

	for file := range p.sources {
		for _, ref := range p.references.ByFile(file) {
			if ref.Kind == types.RefCall {
				continue // already covered via callRefs above
			}
			d, ok := resolve.ResolveName(p.registries(), file, ref.Name, ref.ScopeID)
			if ok && d.SymbolId == id {
				add(ref.Location)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			return out[i].FilePath < out[j].FilePath
		}
		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}
		return out[i].StartCol < out[j].StartCol
	})
	return out
}

// GetImportWithDefinition pairs one resolved import with the symbol it
// ultimately names, following re-export chains the same way C8 step 2
// does. For namespace and Python module-as-named imports the resolved
// symbol is the import definition itself.
type GetImportWithDefinition struct {
	Import         *types.Definition
	ResolvedSymbol *types.Definition
}

// GetImportsWithDefinitions implements §6's
// get_imports_with_definitions(path).
func (p *Project) GetImportsWithDefinitions(path string) []GetImportWithDefinition {
	file := normalizePath(path)
	var out []GetImportWithDefinition
	for _, ri := range p.imports.Imports(file) {
		entry := GetImportWithDefinition{Import: ri.Definition}
		if !ri.Resolved {
			out = append(out, entry)
			continue
		}
		switch ri.Definition.Import.Kind {
		case types.ImportNamespace:
			entry.ResolvedSymbol = ri.Definition
		default:
			if ri.Definition.Import.IsModuleAsNamed {
				entry.ResolvedSymbol = ri.Definition
				break
			}
			sourceName := ri.Definition.Import.OriginalName
			if sourceName == "" {
				sourceName = ri.Definition.Name
			}
			if d, ok := p.exports.ResolveExportChain(ri.Target, sourceName, p.imports); ok {
				entry.ResolvedSymbol = d
			}
		}
		out = append(out, entry)
	}
	return out
}

// GetCallGraph implements §6's get_call_graph(): flattens every file's
// cached resolved calls and rebuilds the graph fresh, matching §5's
// "recomputed into a fresh snapshot" policy for resolution-derived state.
func (p *Project) GetCallGraph() *types.CallGraph {
	var all []*types.CallReference
	for _, crs := range p.callRefs {
		all = append(all, crs...)
	}
	return callgraph.Build(p.definitions, all)
}

// GetInheritanceChain implements §6's get_inheritance_chain(type_id): a
// breadth-first walk of resolved Parents edges starting at id, id itself
// excluded, each ancestor visited once even under diamond inheritance.
func (p *Project) GetInheritanceChain(id types.TypeId) []types.TypeId {
	visited := map[types.TypeId]bool{id: true}
	var out []types.TypeId
	queue := p.types.Parents(id)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		out = append(out, cur)
		queue = append(queue, p.types.Parents(cur)...)
	}
	return out
}

// FindSubclasses implements §6's find_subclasses(type_id): every type
// whose resolved Parents list includes id, by inheritance only
// (implementers of an interface are FindImplementations' concern, §4.6).
func (p *Project) FindSubclasses(id types.TypeId) []*types.Definition {
	return p.ownerDefinitions(p.types.SubtypesByInheritance(id))
}

// FindImplementations implements §6's find_implementations(interface_id).
func (p *Project) FindImplementations(id types.TypeId) []*types.Definition {
	return p.ownerDefinitions(p.types.SubtypesByImplementation(id))
}

func (p *Project) ownerDefinitions(ids []types.TypeId) []*types.Definition {
	out := make([]*types.Definition, 0, len(ids))
	for _, id := range ids {
		if d := resolve.OwnerDefinition(p.registries(), id); d != nil {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location.FilePath != out[j].Location.FilePath {
			return out[i].Location.FilePath < out[j].Location.FilePath
		}
		return out[i].Location.StartLine < out[j].Location.StartLine
	})
	return out
}

// PythonAllExports returns the parsed `__all__` entries for a Python
// file, or nil if the file has none (or isn't Python). Per §13's
// open-question decision, this is metadata only: export resolution
// itself (ExportRegistry, the Name Resolver) ignores it and always
// exports by the leading-underscore convention.
func (p *Project) PythonAllExports(path string) []string {
	return p.allExports[normalizePath(path)]
}

// Diagnostics returns the diagnostics accumulated for file by the most
// recent UpdateFile/UpdateFiles call that touched it (§7's per-file,
// never-fatal propagation policy).
func (p *Project) Diagnostics(path string) []types.Diagnostic {
	return p.diagnostics[normalizePath(path)]
}
