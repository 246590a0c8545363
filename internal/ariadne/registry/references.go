package registry

import "github.com/ariadne-lang/ariadne/internal/ariadne/types"

// ReferenceRegistry indexes every Reference across the project by file
// (for removal) and by name (for find_references / call-site lookups).
type ReferenceRegistry struct {
	byFile map[types.FilePath][]*types.Reference
	byName map[string][]*types.Reference
}

// NewReferenceRegistry constructs an empty reference registry.
func NewReferenceRegistry() *ReferenceRegistry {
	return &ReferenceRegistry{
		byFile: make(map[types.FilePath][]*types.Reference),
		byName: make(map[string][]*types.Reference),
	}
}

// AddFile indexes file's references.
func (r *ReferenceRegistry) AddFile(file types.FilePath, refs []*types.Reference) {
	r.byFile[file] = refs
	for _, ref := range refs {
		r.byName[ref.Name] = append(r.byName[ref.Name], ref)
	}
}

// RemoveFile drops file's references.
func (r *ReferenceRegistry) RemoveFile(file types.FilePath) {
	refs, ok := r.byFile[file]
	if !ok {
		return
	}
	for _, ref := range refs {
		r.byName[ref.Name] = removeRef(r.byName[ref.Name], ref)
	}
	delete(r.byFile, file)
}

func removeRef(refs []*types.Reference, target *types.Reference) []*types.Reference {
	out := refs[:0]
	for _, r := range refs {
		if r != target {
			out = append(out, r)
		}
	}
	return out
}

// ByName returns every reference using a given name, across the project.
func (r *ReferenceRegistry) ByName(name string) []*types.Reference {
	return r.byName[name]
}

// ByFile returns a file's references.
func (r *ReferenceRegistry) ByFile(file types.FilePath) []*types.Reference {
	return r.byFile[file]
}
