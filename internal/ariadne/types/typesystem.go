package types

// MemberKind enumerates the member classes a TypeDescriptor tracks.
type MemberKind string

const (
	MemberMethod      MemberKind = "method"
	MemberConstructor MemberKind = "constructor"
	MemberProperty    MemberKind = "property"
	MemberField       MemberKind = "field"
	MemberGetter      MemberKind = "getter"
	MemberSetter      MemberKind = "setter"
)

// MemberInfo is one entry in a TypeDescriptor's member table.
type MemberInfo struct {
	Name           string
	Kind           MemberKind
	SymbolId       SymbolId // zero value if the member has no standalone definition
	IsStatic       bool
	Parameters     []Parameter
	TypeAnnotation string
}

// TypeDescriptor is C6's output for one class/interface/struct/trait.
type TypeDescriptor struct {
	TypeId     TypeId
	Name       SymbolName
	File       FilePath
	IsInterface bool
	Members    []MemberInfo
	Parents    []SymbolName // as written in source; resolved to TypeIds by TypeRegistry
	Implements []SymbolName
}

// FindMember looks up a member by name within this descriptor only (no
// inheritance walk — that is TypeRegistry.ResolveMethod's job).
func (td *TypeDescriptor) FindMember(name string) (*MemberInfo, bool) {
	for i := range td.Members {
		if td.Members[i].Name == name {
			return &td.Members[i], true
		}
	}
	return nil, false
}
