package types

// Confidence ranks a Resolution's reliability; multiple resolutions on one
// call represent genuine polymorphism, not uncertainty alone.
type Confidence string

const (
	ConfidenceCertain  Confidence = "certain"
	ConfidenceProbable Confidence = "probable"
	ConfidencePossible Confidence = "possible"
)

// ResolutionReasonKind tags which variant of ResolutionReason is populated.
type ResolutionReasonKind string

const (
	ReasonDirect                 ResolutionReasonKind = "direct"
	ReasonInterfaceImplementation ResolutionReasonKind = "interface_implementation"
	ReasonCollectionMember       ResolutionReasonKind = "collection_member"
	ReasonHeuristicMatch         ResolutionReasonKind = "heuristic_match"
)

// ResolutionReason is the tagged variant attached to every Resolution.
type ResolutionReason struct {
	Kind ResolutionReasonKind

	InterfaceId TypeId // ReasonInterfaceImplementation

	CollectionId   SymbolId // ReasonCollectionMember
	AccessPattern  string   // ReasonCollectionMember

	Score float64 // ReasonHeuristicMatch, 0.0-1.0
}

// Resolution is one candidate target of a call or name lookup.
type Resolution struct {
	SymbolId   SymbolId
	Confidence Confidence
	Reason     ResolutionReason
}

// CallReference is Phase 2's (C9) per-call-site output.
type CallReference struct {
	Location             Location
	Name                 string
	CallType             CallType
	CallerScopeID        ScopeId
	CallerSymbolId       SymbolId // zero value if the call site sits outside any callable (module-level code)
	Resolutions          []Resolution
	Arguments            []string // positional identifier names, "" for non-identifier arguments

	// IsCallbackInvocation is true when the callee names a parameter of
	// the enclosing caller itself (§4.9 "Callback invocations") rather
	// than a declared function/method/constructor.
	IsCallbackInvocation bool
	// CallbackParamIndex is the matched parameter's position in the
	// caller's parameter list, valid only when IsCallbackInvocation.
	CallbackParamIndex int
	// IndirectTargets holds the concrete callables observed passed into
	// CallbackParamIndex at call sites that call the enclosing caller,
	// when known (§4.9, §9 "callback-as-data").
	IndirectTargets []SymbolId
}

// Diagnostic is a recovered, non-fatal per-file error (§7). Project
// operations never throw for these; they accumulate against the file.
type Diagnostic struct {
	File     FilePath
	Severity DiagnosticSeverity
	Code     DiagnosticCode
	Message  string
	Location *Location // nil when the diagnostic has no specific span
}

// DiagnosticSeverity distinguishes warnings from fatal-to-the-file errors.
type DiagnosticSeverity string

const (
	SeverityWarning DiagnosticSeverity = "warning"
	SeverityError   DiagnosticSeverity = "error"
)

// DiagnosticCode enumerates the §7 error taxonomy.
type DiagnosticCode string

const (
	CodeFileTooLarge       DiagnosticCode = "file_too_large"
	CodeParseError         DiagnosticCode = "parse_error"
	CodeCaptureMalformed   DiagnosticCode = "capture_malformed"
	CodeUnresolvedImport   DiagnosticCode = "unresolved_import"
	CodeInvariantViolation DiagnosticCode = "invariant_violation"
)
