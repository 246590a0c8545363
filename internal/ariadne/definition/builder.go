// Package definition implements C4, the Definition Builder: it consumes
// "definition"/"import"/"export" category captures and lowers each into a
// typed types.Definition. Detail extraction (parameters, heritage,
// modifiers) is grounded on standardbeagle/lci's
// internal/parser/parser_parse_methods.go, which gets away with one
// field-based extractor shared across every language because tree-sitter
// grammars converge on the same field names ("name", "parameters",
// "body") for these constructs — the same convergence this package
// leans on.
package definition

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/scope"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

var entityKind = map[string]types.DefinitionKind{
	"function":    types.DefFunction,
	"method":      types.DefMethod,
	"constructor": types.DefConstructor,
	"class":       types.DefClass,
	"interface":   types.DefInterface,
	"variable":    types.DefVariable,
	"property":    types.DefProperty,
	"enum":        types.DefEnum,
	"type_alias":  types.DefTypeAlias,
}

// Build lowers every definition-category capture for one file into
// Definitions, resolves each one's enclosing scope, and applies the
// arrow/lambda single-definition rule (§4.1): when a "variable" capture
// and a "function" capture share an identical anchor span (a `const f =
// () => {}` binding), the function definition wins and the variable
// definition is dropped.
func Build(file types.FilePath, content []byte, captures []capture.CaptureNode, scopes map[types.ScopeId]*types.LexicalScope, language string) []*types.Definition {
	var anchors []capture.CaptureNode
	var names []capture.CaptureNode
	for _, c := range captures {
		if c.Category != capture.CategoryDefinition {
			continue
		}
		if _, ok := entityKind[c.Entity]; !ok {
			continue
		}
		if c.Qualifier == "name" {
			names = append(names, c)
		} else if c.Qualifier == "" {
			anchors = append(anchors, c)
		}
	}

	claimedSpans := make(map[string]bool)
	var defs []*types.Definition

	for _, anchor := range anchors {
		kind := entityKind[anchor.Entity]
		nameCap, nameNode := nearestName(anchor, names)
		name := nameCap.Text
		if name == "" && anchor.Node != nil {
			if n := anchor.Node.ChildByFieldName("name"); n != nil {
				name = nodeText(n, content)
			}
		}
		if name == "" {
			continue
		}

		spanKey := spanOf(anchor.Location)
		enclosingScope := scope.Enclosing(scopes, anchor.Location)
		// A construct that opens a scope is captured with that scope's exact
		// span; the definition itself belongs to the scope around it.
		if s, ok := scopes[enclosingScope]; ok && spanOf(s.Location) == spanKey {
			enclosingScope = s.ParentID
		}

		def := &types.Definition{
			SymbolId:        types.NewSymbolId(kind, file, anchor.Location.StartLine, anchor.Location.StartCol, name),
			Name:            name,
			Kind:            kind,
			Location:        anchor.Location,
			DefiningScopeID: enclosingScope,
		}

		switch kind {
		case types.DefFunction, types.DefMethod, types.DefConstructor:
			def.Function = extractFunctionInfo(anchor.Node, content, kind)
			if def.Function.IsGenerator && kind == types.DefFunction && strings.EqualFold(name, "constructor") {
				def.Kind = types.DefConstructor
			}
		case types.DefClass, types.DefInterface:
			def.Class = extractClassInfo(anchor.Node, content, kind == types.DefInterface)
		case types.DefVariable, types.DefProperty:
			def.Variable = extractVariableInfo(anchor.Node, content, nameNode)
		case types.DefEnum:
			def.Enum = extractEnumInfo(anchor.Node, content)
		case types.DefTypeAlias:
			def.TypeAlias = extractTypeAliasInfo(anchor.Node, content)
		}

		// Arrow/lambda-as-single-definition: a `const f = () => {}`
		// capture set produces both a "variable" and a "function" anchor
		// at the same span (the adapter's query intentionally double-
		// captures variable_declarator). The function definition is kept.
		if claimedSpans[spanKey] && kind == types.DefVariable {
			continue
		}
		if kind != types.DefVariable {
			claimedSpans[spanKey] = true
		}

		defs = append(defs, def)
	}

	return dedupeVariableVsFunction(defs)
}

// dedupeVariableVsFunction drops a DefVariable definition whose Location
// exactly matches a DefFunction definition's Location (same construct,
// captured twice by the adapter's combined query) and returns the
// shortened slice.
func dedupeVariableVsFunction(defs []*types.Definition) []*types.Definition {
	functionSpans := make(map[string]bool)
	for _, d := range defs {
		if d.Kind == types.DefFunction || d.Kind == types.DefMethod || d.Kind == types.DefConstructor {
			functionSpans[spanOf(d.Location)] = true
		}
	}
	out := defs[:0]
	for _, d := range defs {
		if d.Kind == types.DefVariable && functionSpans[spanOf(d.Location)] {
			continue
		}
		out = append(out, d)
	}
	for i := len(out); i < len(defs); i++ {
		defs[i] = nil
	}
	return out
}

func spanOf(loc types.Location) string {
	return loc.String()
}

// nearestName finds the smallest-span name capture of the same
// category/entity/qualifier="name" contained within anchor's span —
// the capture-level pairing replacing match-grouping (§4.1).
func nearestName(anchor capture.CaptureNode, names []capture.CaptureNode) (capture.CaptureNode, *sitter.Node) {
	var best capture.CaptureNode
	var bestSize = -1
	for _, n := range names {
		if n.Entity != anchor.Entity {
			continue
		}
		if !anchor.Location.Contains(n.Location) {
			continue
		}
		size := (n.Location.EndLine-n.Location.StartLine)*100000 + (n.Location.EndCol - n.Location.StartCol)
		if bestSize == -1 || size < bestSize {
			bestSize = size
			best = n
		}
	}
	return best, best.Node
}

func extractFunctionInfo(node *sitter.Node, content []byte, kind types.DefinitionKind) *types.FunctionInfo {
	info := &types.FunctionInfo{}
	if node == nil {
		return info
	}

	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		paramsNode = node.ChildByFieldName("parameter")
	}
	if paramsNode != nil {
		for i := uint(0); i < paramsNode.ChildCount(); i++ {
			child := paramsNode.Child(i)
			if child == nil {
				continue
			}
			if p, ok := extractParameter(child, content); ok {
				info.Parameters = append(info.Parameters, p)
			}
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		info.ReturnType = nodeText(ret, content)
	}

	text := nodeText(node, content)
	info.IsAsync = strings.Contains(firstLine(text), "async ")
	info.IsGenerator = strings.Contains(node.Kind(), "generator") || strings.Contains(firstLine(text), "function*") || strings.Contains(firstLine(text), "yield")
	info.IsStatic = strings.Contains(firstLine(text), "static ")

	switch {
	case strings.Contains(firstLine(text), "private "):
		info.Access = types.AccessPrivate
	case strings.Contains(firstLine(text), "protected "):
		info.Access = types.AccessProtected
	case strings.Contains(firstLine(text), "public "):
		info.Access = types.AccessPublic
	case strings.HasPrefix(strings.TrimSpace(text), "_") || strings.HasPrefix(strings.TrimSpace(text), "def _"):
		info.Access = types.AccessPrivate
	}

	return info
}

func extractParameter(node *sitter.Node, content []byte) (types.Parameter, bool) {
	switch node.Kind() {
	case "identifier", "self", "typed_parameter", "required_parameter":
		name := node
		if n := node.ChildByFieldName("pattern"); n != nil {
			name = n
		}
		p := types.Parameter{Name: nodeText(name, content)}
		if t := node.ChildByFieldName("type"); t != nil {
			p.TypeAnnotation = nodeText(t, content)
		}
		return p, true
	case "assignment_pattern", "default_parameter", "optional_parameter":
		p := types.Parameter{HasDefault: true, IsOptional: true}
		if n := node.ChildByFieldName("left"); n != nil {
			p.Name = nodeText(n, content)
		} else if n := node.ChildByFieldName("name"); n != nil {
			p.Name = nodeText(n, content)
		}
		if v := node.ChildByFieldName("right"); v != nil {
			p.DefaultText = nodeText(v, content)
		} else if v := node.ChildByFieldName("value"); v != nil {
			p.DefaultText = nodeText(v, content)
		}
		return p, true
	case "rest_pattern", "variadic_parameter", "self_parameter":
		p := types.Parameter{IsRest: node.Kind() != "self_parameter"}
		if n := node.ChildByFieldName("pattern"); n != nil {
			p.Name = nodeText(n, content)
		} else {
			p.Name = nodeText(node, content)
		}
		return p, true
	default:
		return types.Parameter{}, false
	}
}

func extractClassInfo(node *sitter.Node, content []byte, isInterface bool) *types.ClassInfo {
	info := &types.ClassInfo{IsInterface: isInterface}
	if node == nil {
		return info
	}

	if heritage := node.ChildByFieldName("heritage"); heritage != nil {
		walkHeritage(heritage, content, info)
	}
	if super := node.ChildByFieldName("superclass"); super != nil {
		info.Inherits = append(info.Inherits, nodeText(super, content))
	}
	if super := node.ChildByFieldName("superclasses"); super != nil {
		for i := uint(0); i < super.ChildCount(); i++ {
			if c := super.Child(i); c != nil && c.Kind() == "identifier" {
				info.Inherits = append(info.Inherits, nodeText(c, content))
			}
		}
	}
	if trait := node.ChildByFieldName("trait"); trait != nil {
		info.Implements = append(info.Implements, nodeText(trait, content))
	}
	return info
}

func walkHeritage(node *sitter.Node, content []byte, info *types.ClassInfo) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "extends_clause":
			if v := child.ChildByFieldName("value"); v != nil {
				info.Inherits = append(info.Inherits, nodeText(v, content))
			}
		case "implements_clause":
			for j := uint(0); j < child.ChildCount(); j++ {
				if t := child.Child(j); t != nil && t.Kind() == "type_identifier" {
					info.Implements = append(info.Implements, nodeText(t, content))
				}
			}
		}
	}
}

func extractVariableInfo(node *sitter.Node, content []byte, nameNode *sitter.Node) *types.VariableInfo {
	info := &types.VariableInfo{}
	if node == nil {
		return info
	}
	if t := node.ChildByFieldName("type"); t != nil {
		info.TypeAnnotation = nodeText(t, content)
	}
	if parent := node.Parent(); parent != nil {
		info.IsConst = strings.Contains(firstLine(nodeText(parent, content)), "const ")
	}
	return info
}

func extractEnumInfo(node *sitter.Node, content []byte) *types.EnumInfo {
	info := &types.EnumInfo{}
	if node == nil {
		return info
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return info
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "property_identifier", "identifier":
			info.Members = append(info.Members, nodeText(child, content))
		case "enum_assignment":
			if n := child.ChildByFieldName("name"); n != nil {
				info.Members = append(info.Members, nodeText(n, content))
			}
		}
	}
	return info
}

func extractTypeAliasInfo(node *sitter.Node, content []byte) *types.TypeAliasInfo {
	info := &types.TypeAliasInfo{}
	if node == nil {
		return info
	}
	if v := node.ChildByFieldName("value"); v != nil {
		info.AliasedType = nodeText(v, content)
	}
	return info
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > uint(len(content)) || end > uint(len(content)) || start > end {
		return ""
	}
	return string(content[start:end])
}
