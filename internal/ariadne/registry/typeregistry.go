package registry

import "github.com/ariadne-lang/ariadne/internal/ariadne/types"

// TypeRegistry indexes every TypeDescriptor across the project and
// resolves each one's Parents/Implements name lists against other
// files' TypeIds. Resolution is retried on every subsequent AddFile call
// rather than failing permanently, since a subclass is routinely indexed
// before its superclass's file (§4.6, §4.10).
type TypeRegistry struct {
	byTypeID map[types.TypeId]*types.TypeDescriptor
	byFile   map[types.FilePath][]types.TypeId
	byName   map[types.SymbolName][]types.TypeId

	resolvedParents    map[types.TypeId][]types.TypeId
	resolvedImplements map[types.TypeId][]types.TypeId
}

// NewTypeRegistry constructs an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byTypeID:           make(map[types.TypeId]*types.TypeDescriptor),
		byFile:             make(map[types.FilePath][]types.TypeId),
		byName:             make(map[types.SymbolName][]types.TypeId),
		resolvedParents:    make(map[types.TypeId][]types.TypeId),
		resolvedImplements: make(map[types.TypeId][]types.TypeId),
	}
}

// AddFile registers file's TypeDescriptors and attempts to resolve every
// pending parent/implements reference across the whole registry (a newly
// added type might be the missing superclass some earlier type needed).
func (r *TypeRegistry) AddFile(file types.FilePath, descriptors map[types.TypeId]*types.TypeDescriptor) {
	for id, desc := range descriptors {
		r.byTypeID[id] = desc
		r.byFile[file] = append(r.byFile[file], id)
		r.byName[desc.Name] = append(r.byName[desc.Name], id)
	}
	r.resolveAll()
}

// RemoveFile drops file's TypeDescriptors, including them from other
// types' resolved parent/implements lists.
func (r *TypeRegistry) RemoveFile(file types.FilePath) {
	ids, ok := r.byFile[file]
	if !ok {
		return
	}
	for _, id := range ids {
		desc := r.byTypeID[id]
		if desc != nil {
			r.byName[desc.Name] = removeTypeID(r.byName[desc.Name], id)
		}
		delete(r.byTypeID, id)
		delete(r.resolvedParents, id)
		delete(r.resolvedImplements, id)
	}
	delete(r.byFile, file)
	r.resolveAll()
}

func removeTypeID(ids []types.TypeId, target types.TypeId) []types.TypeId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// resolveAll re-attempts name resolution for every descriptor's
// Parents/Implements lists. Ambiguous names (multiple types sharing one
// name project-wide) resolve to every candidate — callers performing an
// inheritance-chain walk should treat that as genuine ambiguity, not
// pick arbitrarily.
func (r *TypeRegistry) resolveAll() {
	for id, desc := range r.byTypeID {
		r.resolvedParents[id] = resolveNames(desc.Parents, r.byName, id)
		r.resolvedImplements[id] = resolveNames(desc.Implements, r.byName, id)
	}
}

func resolveNames(names []types.SymbolName, byName map[types.SymbolName][]types.TypeId, self types.TypeId) []types.TypeId {
	var out []types.TypeId
	for _, n := range names {
		for _, id := range byName[n] {
			if id != self {
				out = append(out, id)
			}
		}
	}
	return out
}

// Get returns a descriptor by id.
func (r *TypeRegistry) Get(id types.TypeId) (*types.TypeDescriptor, bool) {
	d, ok := r.byTypeID[id]
	return d, ok
}

// Parents returns id's resolved parent TypeIds.
func (r *TypeRegistry) Parents(id types.TypeId) []types.TypeId {
	return r.resolvedParents[id]
}

// Implements returns id's resolved implemented-interface TypeIds.
func (r *TypeRegistry) Implements(id types.TypeId) []types.TypeId {
	return r.resolvedImplements[id]
}

// ByName returns every TypeId declared under a given name project-wide.
func (r *TypeRegistry) ByName(name types.SymbolName) []types.TypeId {
	return r.byName[name]
}

// ResolveMethod walks id's inheritance chain (itself, then parents
// breadth-first, supporting multiple inheritance/interfaces) looking for
// a member named `name`. Returns the first descriptor/member pair found;
// a visited set keeps the walk cycle-safe.
func (r *TypeRegistry) ResolveMethod(id types.TypeId, name string) (*types.TypeDescriptor, *types.MemberInfo, bool) {
	visited := make(map[types.TypeId]bool)
	queue := []types.TypeId{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		desc, ok := r.byTypeID[cur]
		if !ok {
			continue
		}
		if m, found := desc.FindMember(name); found {
			return desc, m, true
		}
		queue = append(queue, r.resolvedParents[cur]...)
		queue = append(queue, r.resolvedImplements[cur]...)
	}
	return nil, nil, false
}

// Subtypes returns every TypeId whose resolved Parents or Implements
// list includes id — the call resolver's dispatch-point data source,
// where a direct subclass and an interface implementer are equally
// plausible concrete receivers.
func (r *TypeRegistry) Subtypes(id types.TypeId) []types.TypeId {
	return append(r.SubtypesByInheritance(id), r.SubtypesByImplementation(id)...)
}

// SubtypesByInheritance returns every TypeId whose resolved Parents list
// includes id — find_subclasses' data source.
func (r *TypeRegistry) SubtypesByInheritance(id types.TypeId) []types.TypeId {
	var out []types.TypeId
	for other, parents := range r.resolvedParents {
		for _, p := range parents {
			if p == id {
				out = append(out, other)
				break
			}
		}
	}
	return out
}

// SubtypesByImplementation returns every TypeId whose resolved
// Implements list includes id — find_implementations' data source.
func (r *TypeRegistry) SubtypesByImplementation(id types.TypeId) []types.TypeId {
	var out []types.TypeId
	for other, impls := range r.resolvedImplements {
		for _, p := range impls {
			if p == id {
				out = append(out, other)
				break
			}
		}
	}
	return out
}
