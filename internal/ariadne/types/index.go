package types

// SemanticIndex is the per-file output of the 4-pass pipeline (C2–C6).
type SemanticIndex struct {
	FilePath    FilePath
	Language    string
	RootScopeID ScopeId

	Scopes      map[ScopeId]*LexicalScope
	Definitions []*Definition // every kind, in source order
	References  []*Reference  // ordered sequence, source order
	Imports     []*ImportInfo // derived view over import-kind Definitions

	TypeDescriptors map[TypeId]*TypeDescriptor
}

// NewSemanticIndex creates an empty index for a freshly parsed file.
func NewSemanticIndex(file FilePath, language string) *SemanticIndex {
	return &SemanticIndex{
		FilePath:        file,
		Language:        language,
		Scopes:          make(map[ScopeId]*LexicalScope),
		TypeDescriptors: make(map[TypeId]*TypeDescriptor),
	}
}

// DefinitionsByKind filters Definitions to one kind, preserving order.
func (idx *SemanticIndex) DefinitionsByKind(kind DefinitionKind) []*Definition {
	var out []*Definition
	for _, d := range idx.Definitions {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// EditRecord describes an incremental source edit, as supplied by a
// caller of update_file_range (§5, §6). Byte offsets and points follow
// tree-sitter's InputEdit shape; adapters always reparse the whole file,
// so no cached tree is edited with it.
type EditRecord struct {
	StartByte    uint32
	OldEndByte   uint32
	NewEndByte   uint32
	StartPoint   Point
	OldEndPoint  Point
	NewEndPoint  Point
}
