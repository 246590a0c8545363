// Package typescript implements the C1 language adapter for
// TypeScript/TSX, grounded on standardbeagle/lci's
// internal/parser.setupTypeScript query plus the shared JavaScript
// receiver/import machinery (TypeScript is a syntactic superset for the
// constructs this pipeline cares about).
package typescript

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	jsshared "github.com/ariadne-lang/ariadne/internal/ariadne/adapter/javascript"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

const queryText = `
(program) @scope.module

(function_declaration name: (identifier) @definition.function.name) @scope.function
(function_declaration name: (identifier) @definition.function.name) @definition.function
(generator_function_declaration name: (identifier) @definition.function.name) @scope.function
(generator_function_declaration name: (identifier) @definition.function.name) @definition.function
(function_expression name: (identifier) @definition.function.name) @scope.function
(function_expression name: (identifier) @definition.function.name) @definition.function
(method_definition name: (property_identifier) @definition.method.name) @scope.function
(method_definition name: (property_identifier) @definition.method.name) @definition.method
(arrow_function) @scope.arrow

(variable_declarator
    name: (identifier) @definition.function.name
    value: [(arrow_function) (function_expression) (generator_function)]) @definition.function
(variable_declarator
    name: (identifier) @definition.variable.name) @definition.variable

(class_declaration name: (type_identifier) @definition.class.name) @scope.class
(class_declaration name: (type_identifier) @definition.class.name) @definition.class
(interface_declaration name: (type_identifier) @definition.interface.name) @scope.class
(interface_declaration name: (type_identifier) @definition.interface.name) @definition.interface
(type_alias_declaration name: (type_identifier) @definition.type_alias.name) @definition.type_alias
(enum_declaration name: (identifier) @definition.enum.name) @definition.enum

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

// Adapter implements adapter.Adapter for TypeScript/TSX.
type Adapter struct {
	language *sitter.Language
	tsx      bool
}

// New constructs the .ts adapter.
func New() *Adapter {
	return &Adapter{language: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())}
}

// NewTSX constructs the .tsx adapter variant (distinct grammar entry point).
func NewTSX() *Adapter {
	return &Adapter{language: sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()), tsx: true}
}

func (a *Adapter) Language() string {
	if a.tsx {
		return "tsx"
	}
	return "typescript"
}

func (a *Adapter) FileExtensions() []string {
	if a.tsx {
		return []string{".tsx"}
	}
	return []string{".ts", ".mts", ".cts"}
}

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
	return strings.HasSuffix(base, ".test.ts") || strings.HasSuffix(base, ".test.tsx") ||
		strings.HasSuffix(base, ".spec.ts") || strings.HasSuffix(base, ".spec.tsx") ||
		strings.Contains(path, "__tests__/")
}

func (a *Adapter) ResolveImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importPath string) (types.FilePath, bool) {
	if !strings.HasPrefix(importPath, ".") {
		return "", false
	}
	dir := filepath.Dir(sourceFile)
	joined := filepath.ToSlash(filepath.Join(dir, importPath))
	candidates := []string{joined}
	if filepath.Ext(joined) == "" {
		for _, ext := range []string{".ts", ".tsx", ".d.ts", ".js", ".jsx"} {
			candidates = append(candidates, joined+ext)
		}
		for _, ext := range []string{".ts", ".tsx"} {
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

func (a *Adapter) ResolveSubmoduleImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importedModulePath string, name string) (types.FilePath, bool) {
	return "", false
}

func (a *Adapter) ClassifyReceiver(node *sitter.Node, content []byte) types.Receiver {
	if node == nil {
		return types.Receiver{}
	}
	// "as" type assertions wrap the real receiver; unwrap one level so
	// `(x as Foo).bar()` classifies on x, not the assertion node.
	if node.Kind() == "as_expression" {
		if inner := node.ChildByFieldName("expression"); inner != nil {
			return jsshared.ClassifyReceiver(inner, content)
		}
	}
	return jsshared.ClassifyReceiver(node, content)
}

func (a *Adapter) LiteralType(node *sitter.Node, content []byte) (string, bool) {
	return jsshared.LiteralType(node, content)
}
