// Package registry implements C7, the project-wide registries that sit
// above per-file SemanticIndexes: DefinitionRegistry, ScopeRegistry,
// ExportRegistry, ReferenceRegistry, TypeRegistry and ImportGraph. Every
// registry indexes by file path as its primary removal key so a file's
// entire contribution drops in one pass (§5's O(1)-per-file-removal
// requirement), generalizing standardbeagle/lci's LinkerEngine maps
// (internal/symbollinker/linker_engine.go) from a single flat symbol
// table into the five separate, purpose-built indices §4.7 specifies.
package registry

import (
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// DefinitionRegistry indexes every Definition across the project by
// symbol id, file, (scope, name) pair, location and kind. Imports are
// excluded from the (scope, name) index per §4.7 — they are looked up
// through ImportGraph instead, since an import's "name" is local to the
// importing file and easily collides with unrelated definitions sharing
// that name elsewhere.
type DefinitionRegistry struct {
	bySymbolID     map[types.SymbolId]*types.Definition
	byFile         map[types.FilePath][]types.SymbolId
	byScopeAndName map[string][]types.SymbolId
	byLocation     map[string]types.SymbolId
	byKind         map[types.DefinitionKind][]types.SymbolId
}

// NewDefinitionRegistry constructs an empty registry.
func NewDefinitionRegistry() *DefinitionRegistry {
	return &DefinitionRegistry{
		bySymbolID:     make(map[types.SymbolId]*types.Definition),
		byFile:         make(map[types.FilePath][]types.SymbolId),
		byScopeAndName: make(map[string][]types.SymbolId),
		byLocation:     make(map[string]types.SymbolId),
		byKind:         make(map[types.DefinitionKind][]types.SymbolId),
	}
}

func scopeNameKey(scope types.ScopeId, name string) string {
	return string(scope) + "\x00" + name
}

// AddFile indexes every definition belonging to one file. Callers must
// call RemoveFile first when re-indexing an already-known file.
func (r *DefinitionRegistry) AddFile(file types.FilePath, defs []*types.Definition) {
	for _, d := range defs {
		if d == nil {
			continue
		}
		r.bySymbolID[d.SymbolId] = d
		r.byFile[file] = append(r.byFile[file], d.SymbolId)
		r.byLocation[d.Location.String()] = d.SymbolId
		r.byKind[d.Kind] = append(r.byKind[d.Kind], d.SymbolId)
		if d.Kind != types.DefImport {
			key := scopeNameKey(d.DefiningScopeID, d.Name)
			r.byScopeAndName[key] = append(r.byScopeAndName[key], d.SymbolId)
		}
	}
}

// RemoveFile drops every definition belonging to file in one pass.
func (r *DefinitionRegistry) RemoveFile(file types.FilePath) {
	ids, ok := r.byFile[file]
	if !ok {
		return
	}
	for _, id := range ids {
		d, ok := r.bySymbolID[id]
		if !ok {
			continue
		}
		delete(r.bySymbolID, id)
		delete(r.byLocation, d.Location.String())
		r.byKind[d.Kind] = removeID(r.byKind[d.Kind], id)
		if d.Kind != types.DefImport {
			key := scopeNameKey(d.DefiningScopeID, d.Name)
			r.byScopeAndName[key] = removeID(r.byScopeAndName[key], id)
		}
	}
	delete(r.byFile, file)
}

func removeID(ids []types.SymbolId, target types.SymbolId) []types.SymbolId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Get returns a definition by its symbol id.
func (r *DefinitionRegistry) Get(id types.SymbolId) (*types.Definition, bool) {
	d, ok := r.bySymbolID[id]
	return d, ok
}

// ByScopeAndName performs the lexical lookup C8 needs: every
// non-import definition named `name` directly in scope `scope`.
func (r *DefinitionRegistry) ByScopeAndName(scope types.ScopeId, name string) []*types.Definition {
	ids := r.byScopeAndName[scopeNameKey(scope, name)]
	return r.resolveAll(ids)
}

// ByKind returns every definition of one kind, across the whole project.
func (r *DefinitionRegistry) ByKind(kind types.DefinitionKind) []*types.Definition {
	return r.resolveAll(r.byKind[kind])
}

// ByFile returns every definition belonging to one file.
func (r *DefinitionRegistry) ByFile(file types.FilePath) []*types.Definition {
	return r.resolveAll(r.byFile[file])
}

// ByLocation looks up the definition anchored at an exact location.
func (r *DefinitionRegistry) ByLocation(loc types.Location) (*types.Definition, bool) {
	id, ok := r.byLocation[loc.String()]
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

func (r *DefinitionRegistry) resolveAll(ids []types.SymbolId) []*types.Definition {
	out := make([]*types.Definition, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.bySymbolID[id]; ok {
			out = append(out, d)
		}
	}
	return out
}
