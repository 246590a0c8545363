package types

// ReferenceKind enumerates the reference classes §3 names.
type ReferenceKind string

const (
	RefRead         ReferenceKind = "read"
	RefWrite        ReferenceKind = "write"
	RefCall         ReferenceKind = "call"
	RefType         ReferenceKind = "type"
	RefImport       ReferenceKind = "import"
	RefMemberAccess ReferenceKind = "member_access"
)

// CallType distinguishes the three call shapes C9 dispatches on.
type CallType string

const (
	CallFunction    CallType = "function"
	CallMethod      CallType = "method"
	CallConstructor CallType = "constructor"
)

// ReceiverKind classifies the receiver expression captured at parse time
// for a method call or member access, feeding infer_receiver_type (§4.1).
type ReceiverKind string

const (
	ReceiverIdentifier ReceiverKind = "identifier"
	ReceiverThis       ReceiverKind = "this"
	ReceiverSelf       ReceiverKind = "self" // Python convention
	ReceiverLiteral    ReceiverKind = "literal"
	ReceiverCall       ReceiverKind = "call_expression"
	ReceiverMember     ReceiverKind = "member_expression"
)

// Receiver is the symbolic descriptor of a call/member-access receiver
// expression, captured at parse time so C9 never has to re-walk the AST.
type Receiver struct {
	Kind  ReceiverKind
	Text  string // raw source text of the receiver expression
	Name  string // identifier name, when Kind == ReceiverIdentifier
}

// Reference is one use of a name: a read, write, call, type reference,
// import reference, or member access.
type Reference struct {
	Name     string
	Location Location
	ScopeID  ScopeId
	Kind     ReferenceKind

	// Populated only when Kind == RefCall.
	CallType CallType
	Receiver *Receiver
	// Arguments holds one entry per call argument, positional: the
	// argument's bare identifier name, or "" when the argument isn't a
	// plain identifier. Used to trace indirect reachability through
	// callback parameters (§4.9 "Callback invocations").
	Arguments []string
}
