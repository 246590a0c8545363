// Package reference implements C5, the Reference Builder: it lowers
// "reference" category captures into types.Reference values, resolving
// each one's enclosing scope and, for calls, its receiver descriptor via
// the owning adapter's ClassifyReceiver. Reference identity is always
// positional (file + location), never AST node identity — §9's design
// note rules out pointer-keyed reference tracking because a reparsed
// file allocates an entirely new tree.
package reference

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/scope"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

var entityKind = map[string]types.ReferenceKind{
	"read":          types.RefRead,
	"write":         types.RefWrite,
	"call":          types.RefCall,
	"type":          types.RefType,
	"import":        types.RefImport,
	"member_access": types.RefMemberAccess,
}

// Build lowers every reference-category capture into a Reference. Definition
// name-site locations are excluded up front so a declaration's own
// identifier (also matched by the catch-all "reference.read" pattern)
// never doubles as a spurious read reference.
func Build(content []byte, captures []capture.CaptureNode, scopes map[types.ScopeId]*types.LexicalScope, defs []*types.Definition, lang adapter.Adapter) []*types.Reference {
	definitionSites := make(map[string]bool, len(defs))
	for _, d := range defs {
		definitionSites[d.Location.String()] = true
	}
	for _, c := range captures {
		if c.Category == capture.CategoryDefinition && c.Qualifier == "name" {
			definitionSites[c.Location.String()] = true
		}
	}

	var refs []*types.Reference
	seen := make(map[string]bool)

	for _, c := range captures {
		if c.Category != capture.CategoryReference {
			continue
		}
		kind, ok := entityKind[c.Entity]
		if !ok {
			continue
		}
		if definitionSites[c.Location.String()] {
			continue
		}
		// A call/member-access capture's name-site overlaps the more
		// generic read capture at the identical span; keep the more
		// specific kind and drop the duplicate read.
		dedupeKey := c.Location.String()
		if kind == types.RefRead && seen[dedupeKey] {
			continue
		}

		ref := &types.Reference{
			Name:     c.Text,
			Location: c.Location,
			ScopeID:  scope.Enclosing(scopes, c.Location),
			Kind:     kind,
		}

		if kind == types.RefCall {
			ref.CallType = inferCallType(c.Node, content)
			if receiverNode := findReceiverNode(c.Node); receiverNode != nil && lang != nil {
				rcv := lang.ClassifyReceiver(receiverNode, content)
				ref.Receiver = &rcv
			}
			ref.Arguments = callArguments(c.Node, content)
		}

		refs = append(refs, ref)
		seen[dedupeKey] = true
	}

	return refs
}

// inferCallType distinguishes function/method/constructor calls from the
// call node's own shape: `new X()`-style nodes are constructors, a call
// whose function is a member/field/attribute expression is a method
// call, everything else is a plain function call.
func inferCallType(node *sitter.Node, content []byte) types.CallType {
	if node == nil {
		return types.CallFunction
	}
	switch node.Kind() {
	case "new_expression":
		return types.CallConstructor
	}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		fn = node.ChildByFieldName("constructor")
		if fn != nil {
			return types.CallConstructor
		}
		return types.CallFunction
	}
	switch fn.Kind() {
	case "member_expression", "attribute", "field_expression":
		return types.CallMethod
	case "scoped_identifier":
		// Rust: Type::new(...) reads as a namespaced function call; the
		// call resolver treats same-named "new"/"with_capacity"-style
		// associated functions as constructor dispatch candidates by name.
		return types.CallFunction
	default:
		return types.CallFunction
	}
}

// callArguments reads a call node's "arguments" field (argument_list in
// JS/TS/Rust, the same field name in Python's grammar) and returns one
// entry per positional argument: its text when the argument is a bare
// identifier, "" otherwise. Used to trace a concrete callable through a
// callback parameter at its call sites (§4.9 "Callback invocations").
func callArguments(node *sitter.Node, content []byte) []string {
	if node == nil {
		return nil
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if child.Kind() == "identifier" {
			out = append(out, string(content[child.StartByte():child.EndByte()]))
		} else {
			out = append(out, "")
		}
	}
	return out
}

// findReceiverNode extracts the object/value half of a call's function
// field when that field is itself a member/attribute/field expression.
func findReceiverNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	switch fn.Kind() {
	case "member_expression":
		return fn.ChildByFieldName("object")
	case "attribute":
		return fn.ChildByFieldName("object")
	case "field_expression":
		return fn.ChildByFieldName("value")
	default:
		return nil
	}
}
