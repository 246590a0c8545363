// Package resolve implements Phase 1 (C8, lexical name resolution) and
// Phase 2 (C9, call dispatch) over the project registries (C7). It is
// grounded on standardbeagle/lci's per-language resolver pairs
// (js_resolver.go, python_resolver.go, go_resolver.go) generalized into
// one language-agnostic two-phase algorithm that only consults the
// adapter for syntactic receiver classification, never for name lookup.
package resolve

import (
	"github.com/ariadne-lang/ariadne/internal/ariadne/registry"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// Registries bundles the C7 lookups both resolution phases need.
type Registries struct {
	Definitions *registry.DefinitionRegistry
	Scopes      *registry.ScopeRegistry
	Imports     *registry.ImportGraph
	Exports     *registry.ExportRegistry
	Types       *registry.TypeRegistry
	References  *registry.ReferenceRegistry
}

// ResolveName implements C8: walk the scope chain outward from
// startScope looking for a definition named `name`; on reaching the
// module root with no match, fall through to the file's import table and
// follow any re-export chain to a concrete definition (§4.8).
func ResolveName(reg *Registries, file types.FilePath, name string, startScope types.ScopeId) (*types.Definition, bool) {
	cur := startScope
	for cur != "" {
		if results := reg.Definitions.ByScopeAndName(cur, name); len(results) > 0 {
			return innermostBySource(results), true
		}
		s, ok := reg.Scopes.Get(file, cur)
		if !ok {
			break
		}
		cur = s.ParentID
	}

	ri, ok := reg.Imports.ResolveLocalImport(file, name)
	if !ok || !ri.Resolved {
		return nil, false
	}
	// Namespace imports (`import * as ns from "./mod"`) and Python
	// module-as-named imports (`from pkg import submodule`) bind the
	// local name to the target file/module itself, not to one of its
	// exports — resolving further through the export chain would walk
	// past the thing the name actually refers to (§4.8 step 2).
	if ri.Definition.Import.Kind == types.ImportNamespace || ri.Definition.Import.IsModuleAsNamed {
		return ri.Definition, true
	}
	sourceName := ri.Definition.Import.OriginalName
	if sourceName == "" {
		sourceName = name
	}
	return reg.Exports.ResolveExportChain(ri.Target, sourceName, reg.Imports)
}

// innermostBySource picks a deterministic winner among same-scope,
// same-name candidates (legal only for overload-free languages; when it
// does happen — e.g. a malformed file with a duplicate declaration — tie
// break by source position, matching C9's own tie-break rule).
func innermostBySource(defs []*types.Definition) *types.Definition {
	best := defs[0]
	for _, d := range defs[1:] {
		if less(d.Location, best.Location) {
			best = d
		}
	}
	return best
}

func less(a, b types.Location) bool {
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.StartLine != b.StartLine {
		return a.StartLine < b.StartLine
	}
	return a.StartCol < b.StartCol
}

// EnclosingClass walks scope ancestors starting at scopeID looking for
// the nearest ScopeClass scope, returning the class Definition anchored
// at that scope's span (scope and class-definition captures share an
// identical location, §4.1).
func EnclosingClass(reg *Registries, file types.FilePath, scopeID types.ScopeId) (*types.Definition, bool) {
	cur := scopeID
	for cur != "" {
		s, ok := reg.Scopes.Get(file, cur)
		if !ok {
			return nil, false
		}
		if s.Type == types.ScopeClass {
			return reg.Definitions.ByLocation(s.Location)
		}
		cur = s.ParentID
	}
	return nil, false
}

// EnclosingCallable walks scope ancestors starting at scopeID looking
// for the nearest function/arrow scope, returning the callable
// Definition anchored at that scope's span. Used to attribute a call
// reference to its caller for C11's call-graph edges; a call sitting
// directly in module-level code has no enclosing callable.
func EnclosingCallable(reg *Registries, file types.FilePath, scopeID types.ScopeId) (*types.Definition, bool) {
	cur := scopeID
	for cur != "" {
		s, ok := reg.Scopes.Get(file, cur)
		if !ok {
			return nil, false
		}
		if s.Type == types.ScopeFunction || s.Type == types.ScopeArrow {
			if d, ok := reg.Definitions.ByLocation(s.Location); ok && d.IsCallable() {
				return d, true
			}
		}
		cur = s.ParentID
	}
	return nil, false
}
