package registry

import "github.com/ariadne-lang/ariadne/internal/ariadne/types"

// ScopeRegistry holds each file's scope tree, keyed by file for O(1)
// removal, plus the file's root scope id for convenience.
type ScopeRegistry struct {
	byFile map[types.FilePath]map[types.ScopeId]*types.LexicalScope
	roots  map[types.FilePath]types.ScopeId
}

// NewScopeRegistry constructs an empty scope registry.
func NewScopeRegistry() *ScopeRegistry {
	return &ScopeRegistry{
		byFile: make(map[types.FilePath]map[types.ScopeId]*types.LexicalScope),
		roots:  make(map[types.FilePath]types.ScopeId),
	}
}

// AddFile stores one file's scope tree.
func (r *ScopeRegistry) AddFile(file types.FilePath, root types.ScopeId, scopes map[types.ScopeId]*types.LexicalScope) {
	r.byFile[file] = scopes
	r.roots[file] = root
}

// RemoveFile drops a file's scope tree.
func (r *ScopeRegistry) RemoveFile(file types.FilePath) {
	delete(r.byFile, file)
	delete(r.roots, file)
}

// Get looks up a scope by id within a specific file.
func (r *ScopeRegistry) Get(file types.FilePath, id types.ScopeId) (*types.LexicalScope, bool) {
	scopes, ok := r.byFile[file]
	if !ok {
		return nil, false
	}
	s, ok := scopes[id]
	return s, ok
}

// Root returns a file's module-level scope id.
func (r *ScopeRegistry) Root(file types.FilePath) (types.ScopeId, bool) {
	id, ok := r.roots[file]
	return id, ok
}

// Scopes returns a file's full scope map.
func (r *ScopeRegistry) Scopes(file types.FilePath) map[types.ScopeId]*types.LexicalScope {
	return r.byFile[file]
}
