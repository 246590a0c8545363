// Package typesystem implements C6, the Type Preprocessor: per-file
// TypeId allocation and TypeDescriptor assembly. Parent/implements name
// resolution against other files' TypeIds is deliberately NOT done here
// — it belongs to the project-wide TypeRegistry (C7), which can retry
// resolution as more files are indexed (§4.6, §4.10).
package typesystem

import (
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// Build allocates a TypeDescriptor for every class/interface definition
// in one file and assigns it its member table by matching method/
// constructor/property definitions whose DefiningScopeID is the class's
// own scope (the class body).
func Build(file types.FilePath, defs []*types.Definition) map[types.TypeId]*types.TypeDescriptor {
	out := make(map[types.TypeId]*types.TypeDescriptor)

	classScopes := make(map[types.ScopeId]*types.TypeDescriptor)
	for _, d := range defs {
		if !d.IsType() || d.Class == nil {
			continue
		}
		desc := &types.TypeDescriptor{
			TypeId:      types.NewTypeId(d.Name, file),
			Name:        d.Name,
			File:        file,
			IsInterface: d.Class.IsInterface,
			Parents:     d.Class.Inherits,
			Implements:  d.Class.Implements,
		}
		out[desc.TypeId] = desc

		classScopeID := types.NewScopeId(types.ScopeClass, file, d.Location.StartLine, d.Location.StartCol, d.Location.EndLine, d.Location.EndCol)
		classScopes[classScopeID] = desc
	}

	for _, d := range defs {
		desc, ok := classScopes[d.DefiningScopeID]
		if !ok {
			continue
		}
		member, ok := toMemberInfo(d)
		if !ok {
			continue
		}
		desc.Members = append(desc.Members, member)
		if owner := findOwningDefinition(defs, classScopes, d.DefiningScopeID); owner != nil {
			owner.Class.Members = append(owner.Class.Members, d.SymbolId)
		}
	}

	return out
}

func toMemberInfo(d *types.Definition) (types.MemberInfo, bool) {
	switch d.Kind {
	case types.DefMethod, types.DefConstructor:
		kind := types.MemberMethod
		if d.Kind == types.DefConstructor {
			kind = types.MemberConstructor
		}
		mi := types.MemberInfo{Name: d.Name, Kind: kind, SymbolId: d.SymbolId}
		if d.Function != nil {
			mi.IsStatic = d.Function.IsStatic
			mi.Parameters = d.Function.Parameters
			mi.TypeAnnotation = d.Function.ReturnType
		}
		return mi, true
	case types.DefProperty, types.DefVariable:
		mi := types.MemberInfo{Name: d.Name, Kind: types.MemberField, SymbolId: d.SymbolId}
		if d.Variable != nil {
			mi.TypeAnnotation = d.Variable.TypeAnnotation
		}
		return mi, true
	default:
		return types.MemberInfo{}, false
	}
}

func findOwningDefinition(defs []*types.Definition, classScopes map[types.ScopeId]*types.TypeDescriptor, scopeID types.ScopeId) *types.Definition {
	desc, ok := classScopes[scopeID]
	if !ok {
		return nil
	}
	for _, d := range defs {
		if d.Class != nil && d.Name == desc.Name && d.IsType() {
			return d
		}
	}
	return nil
}
