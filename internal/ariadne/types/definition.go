package types

// DefinitionKind enumerates the definition classes §3 names.
type DefinitionKind string

const (
	DefFunction    DefinitionKind = "function"
	DefMethod      DefinitionKind = "method"
	DefConstructor DefinitionKind = "constructor"
	DefClass       DefinitionKind = "class"
	DefInterface   DefinitionKind = "interface"
	DefVariable    DefinitionKind = "variable"
	DefParameter   DefinitionKind = "parameter"
	DefImport      DefinitionKind = "import"
	DefProperty    DefinitionKind = "property"
	DefEnum        DefinitionKind = "enum"
	DefTypeAlias   DefinitionKind = "type_alias"
)

// AccessModifier mirrors the handful of visibility keywords the four
// supported languages actually have; languages without a concept (Python,
// JavaScript) leave it at AccessDefault.
type AccessModifier string

const (
	AccessDefault   AccessModifier = ""
	AccessPublic    AccessModifier = "public"
	AccessPrivate   AccessModifier = "private"
	AccessProtected AccessModifier = "protected"
)

// Parameter describes one formal parameter of a function/method/constructor.
type Parameter struct {
	Name           string
	TypeAnnotation string
	IsOptional     bool
	IsRest         bool
	HasDefault     bool
	DefaultText    string
}

// CallbackContext records whether a function-valued definition was
// observed flowing into another call's argument position (§4.4).
type CallbackContext struct {
	IsCallback         bool
	ReceiverIsExternal bool
}

// FunctionInfo holds fields specific to function/method/constructor defs.
type FunctionInfo struct {
	Parameters        []Parameter
	ReturnType        string
	Access            AccessModifier
	IsStatic          bool
	IsAsync           bool
	IsGenerator       bool
	EnclosingTypeName SymbolName // methods/constructors only; resolved to a TypeId in C6
	Callback          CallbackContext
}

// ClassInfo holds fields specific to class/interface/struct/trait defs.
type ClassInfo struct {
	Inherits    []SymbolName
	Implements  []SymbolName
	Members     []SymbolId // child definitions inside the class scope
	IsInterface bool
}

// VariableInfo holds fields specific to variable/parameter/property defs.
type VariableInfo struct {
	TypeAnnotation string
	IsConst        bool
	// DeclaredTypeName is the bare type name the call resolver looks up in
	// the TypeRegistry when this variable is a method-call receiver. The
	// definition builder does not set it, and reassignments are not
	// tracked: a receiver's type never follows a later write.
	DeclaredTypeName SymbolName
}

// ImportKind enumerates the import flavors §3/§4.4 distinguish.
type ImportKind string

const (
	ImportNamed      ImportKind = "named"
	ImportNamespace  ImportKind = "namespace"
	ImportDefault    ImportKind = "default"
	ImportSideEffect ImportKind = "side_effect"
)

// ImportInfo holds fields specific to import definitions. Per §4.7,
// imports are excluded from DefinitionRegistry's (scope, name) index and
// must be looked up through this structure instead.
type ImportInfo struct {
	LocalName        string
	OriginalName     string // "" if same as LocalName
	SourceModulePath string
	Kind             ImportKind
	IsReexport       bool
	ReexportSource   string // populated when IsReexport, same as SourceModulePath
	// IsModuleAsNamed is Python-specific: true for `from pkg import submodule`
	// where submodule resolves to a file, per §4.4/§4.6/§4.9(3)/S3.
	IsModuleAsNamed bool
}

// ExportMeta is attached to a definition when it is re-exported or
// exported under a different name than its local one.
type ExportMeta struct {
	ExportName string // "" means same as the definition's Name
	IsDefault  bool
	IsReexport bool
}

// EnumInfo holds fields specific to enum definitions.
type EnumInfo struct {
	Members []string
}

// TypeAliasInfo holds fields specific to type_alias definitions.
type TypeAliasInfo struct {
	AliasedType string
}

// Definition is the tagged-union record every capture lowers to. Exactly
// one of the kind-specific pointer fields is populated, matching Kind.
type Definition struct {
	SymbolId        SymbolId
	Name            string
	Kind            DefinitionKind
	Location        Location
	DefiningScopeID ScopeId
	IsExported      bool
	Export          *ExportMeta

	Function  *FunctionInfo
	Class     *ClassInfo
	Variable  *VariableInfo
	Import    *ImportInfo
	Enum      *EnumInfo
	TypeAlias *TypeAliasInfo
}

// IsCallable reports whether this definition is a function/method/constructor
// — i.e. a legitimate call-graph node.
func (d *Definition) IsCallable() bool {
	switch d.Kind {
	case DefFunction, DefMethod, DefConstructor:
		return true
	default:
		return false
	}
}

// IsType reports whether this definition introduces a TypeId (C6 input).
func (d *Definition) IsType() bool {
	return d.Kind == DefClass || d.Kind == DefInterface
}
