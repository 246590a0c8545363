// Package javascript implements the C1 language adapter for JavaScript,
// grounded on standardbeagle/lci's internal/parser.setupJavaScript (the
// literal capture query) merged with internal/symbollinker/js_extractor.go's
// manual detail extraction (parameters, exports, callback detection).
package javascript

import (
	"path/filepath"
	"strings"

	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

const queryText = `
(program) @scope.module

(function_declaration name: (identifier) @definition.function.name) @scope.function
(function_declaration name: (identifier) @definition.function.name) @definition.function
(generator_function_declaration name: (identifier) @definition.function.name) @scope.function
(generator_function_declaration name: (identifier) @definition.function.name) @definition.function
(function_expression) @scope.function
(method_definition name: (property_identifier) @definition.method.name) @scope.function
(method_definition name: (property_identifier) @definition.method.name) @definition.method
(arrow_function) @scope.arrow

(variable_declarator
    name: (identifier) @definition.function.name
    value: [(arrow_function) (function_expression) (generator_function)]) @definition.function
(variable_declarator
    name: (identifier) @definition.variable.name) @definition.variable

(class_declaration name: (identifier) @definition.class.name) @scope.class
(class_declaration name: (identifier) @definition.class.name) @definition.class
(class_expression name: (identifier) @definition.class.name) @scope.class
(class_expression name: (identifier) @definition.class.name) @definition.class

(for_statement) @scope.loop
(for_in_statement) @scope.loop
(while_statement) @scope.loop
(do_statement) @scope.loop
(catch_clause) @scope.block
(statement_block) @scope.block

(import_statement source: (string) @import.module.source) @import.module
(export_statement declaration: (_)) @export.declaration
(export_statement (export_clause)) @export.clause
(export_statement source: (string) @import.reexport.source) @import.reexport

(call_expression function: (identifier) @reference.call.name) @reference.call
(call_expression function: (member_expression property: (property_identifier) @reference.call.name)) @reference.call
(new_expression constructor: (identifier) @reference.call.name) @reference.call
(member_expression property: (property_identifier) @reference.member_access.name) @reference.member_access
(assignment_expression left: (identifier) @reference.write.name) @reference.write
(identifier) @reference.read.name
`

// Adapter implements adapter.Adapter for JavaScript/JSX.
type Adapter struct {
	language *sitter.Language
}

// New constructs the JavaScript adapter, compiling its query once.
func New() *Adapter {
	return &Adapter{language: sitter.NewLanguage(tree_sitter_javascript.Language())}
}

func (a *Adapter) Language() string { return "javascript" }

func (a *Adapter) FileExtensions() []string { return []string{".js", ".jsx", ".mjs", ".cjs"} }

func (a *Adapter) CanHandle(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range a.FileExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

func (a *Adapter) Parse(content []byte) (*sitter.Tree, error) {
	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(a.language); err != nil {
		return nil, err
	}
	return p.Parse(content, nil), nil
}

func (a *Adapter) Queries() map[string]*sitter.Query {
	q, err := sitter.NewQuery(a.language, queryText)
	if err != nil || q == nil {
		return nil
	}
	return map[string]*sitter.Query{"main": q}
}

func (a *Adapter) DetectTestFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".test.js") || strings.HasSuffix(base, ".test.jsx") ||
		strings.HasSuffix(base, ".spec.js") || strings.HasSuffix(base, ".spec.jsx") ||
		strings.Contains(path, "__tests__/")
}

// ResolveImportPath resolves relative specifiers ("./x", "../x") against
// the importing file's directory, the way Node's CommonJS/ESM resolver
// does for project-local modules. Bare specifiers (package names) are
// treated as external and return ok=false.
func (a *Adapter) ResolveImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importPath string) (types.FilePath, bool) {
	return resolveRelativeJSImport(ctx, sourceFile, importPath)
}

func resolveRelativeJSImport(ctx adapter.ImportContext, sourceFile types.FilePath, importPath string) (types.FilePath, bool) {
	if !strings.HasPrefix(importPath, ".") {
		return "", false
	}
	dir := filepath.Dir(sourceFile)
	joined := filepath.ToSlash(filepath.Join(dir, importPath))

	candidates := []string{joined}
	if filepath.Ext(joined) == "" {
		for _, ext := range []string{".js", ".jsx", ".mjs", ".ts", ".tsx"} {
			candidates = append(candidates, joined+ext)
		}
		for _, ext := range []string{".js", ".jsx", ".ts", ".tsx"} {
			candidates = append(candidates, filepath.ToSlash(filepath.Join(joined, "index"+ext)))
		}
	}
	for _, c := range candidates {
		if ctx.FileExists != nil && ctx.FileExists(c) {
			return c, true
		}
	}
	return "", false
}

// ResolveSubmoduleImportPath has no JavaScript meaning (no package/submodule
// file convention the way Python has); always ok=false.
func (a *Adapter) ResolveSubmoduleImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importedModulePath string, name string) (types.FilePath, bool) {
	return "", false
}

func (a *Adapter) ClassifyReceiver(node *sitter.Node, content []byte) types.Receiver {
	return ClassifyReceiver(node, content)
}

// ClassifyReceiver is exported so the TypeScript adapter (a syntactic
// superset for these constructs) can reuse it without re-instantiating a
// JavaScript grammar.
func ClassifyReceiver(node *sitter.Node, content []byte) types.Receiver {
	if node == nil {
		return types.Receiver{}
	}
	text := nodeText(node, content)
	switch node.Kind() {
	case "this":
		return types.Receiver{Kind: types.ReceiverThis, Text: text}
	case "identifier":
		return types.Receiver{Kind: types.ReceiverIdentifier, Text: text, Name: text}
	case "call_expression":
		return types.Receiver{Kind: types.ReceiverCall, Text: text}
	case "member_expression":
		return types.Receiver{Kind: types.ReceiverMember, Text: text}
	case "array", "object", "string", "template_string", "number", "true", "false", "null", "undefined":
		return types.Receiver{Kind: types.ReceiverLiteral, Text: text}
	default:
		return types.Receiver{Kind: types.ReceiverIdentifier, Text: text, Name: text}
	}
}

func (a *Adapter) LiteralType(node *sitter.Node, content []byte) (string, bool) {
	return LiteralType(node, content)
}

// LiteralType is exported for reuse by the TypeScript adapter.
func LiteralType(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Kind() {
	case "array":
		return "Array", true
	case "object":
		return "Object", true
	case "string", "template_string":
		return "String", true
	case "number":
		return "Number", true
	case "true", "false":
		return "Boolean", true
	case "regex":
		return "RegExp", true
	default:
		return "", false
	}
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
