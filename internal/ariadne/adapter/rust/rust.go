// Package rust implements the C1 language adapter for Rust, grounded on
// standardbeagle/lci's internal/parser.setupRust query. Module path
// resolution follows rustc's own file-layout rules (mod.rs vs
// <name>.rs, crate-root via Cargo.toml) rather than the teacher's (Rust
// has no analogue in standardbeagle/lci beyond the bare capture query).
package rust

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

const queryText = `
(source_file) @scope.module

(mod_item name: (identifier) @definition.function.name body: (declaration_list)) @scope.class
(mod_item name: (identifier) @definition.function.name) @definition.class

(function_item name: (identifier) @definition.function.name) @scope.function
(function_item name: (identifier) @definition.function.name) @definition.function

(impl_item type: (type_identifier) @definition.function.name body: (declaration_list
    (function_item name: (identifier) @definition.method.name))) @scope.class

(trait_item name: (type_identifier) @definition.interface.name) @scope.class
(trait_item name: (type_identifier) @definition.interface.name) @definition.interface

(struct_item name: (type_identifier) @definition.class.name) @definition.class
(enum_item name: (type_identifier) @definition.enum.name) @definition.enum
(type_item name: (type_identifier) @definition.type_alias.name) @definition.type_alias

(let_declaration pattern: (identifier) @definition.variable.name) @definition.variable

(closure_expression) @scope.arrow
(for_expression) @scope.loop
(while_expression) @scope.loop
(loop_expression) @scope.loop
(block) @scope.block

(use_declaration) @import.statement

(call_expression function: (identifier) @reference.call.name) @reference.call
(call_expression function: (field_expression field: (field_identifier) @reference.call.name)) @reference.call
(call_expression function: (scoped_identifier name: (identifier) @reference.call.name)) @reference.call
(field_expression field: (field_identifier) @reference.member_access.name) @reference.member_access
(assignment_expression left: (identifier) @reference.write.name) @reference.write
(identifier) @reference.read.name
`

// Adapter implements adapter.Adapter for Rust.
type Adapter struct {
	language *sitter.Language
}

// New constructs the Rust adapter.
func New() *Adapter {
	return &Adapter{language: sitter.NewLanguage(tree_sitter_rust.Language())}
}

func (a *Adapter) Language() string { return "rust" }

func (a *Adapter) FileExtensions() []string { return []string{".rs"} }

func (a *Adapter) CanHandle(path string) bool { return filepath.Ext(path) == ".rs" }

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
	return strings.HasPrefix(path, "tests/") || strings.Contains(path, "/tests/") ||
		strings.HasSuffix(path, "_test.rs")
}

// cargoManifest mirrors just the fields resolution needs from Cargo.toml.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// crateName reads the [package].name out of the Cargo.toml at
// projectRoot (manifests in subdirectories are not consulted), so `use crate_name::module::item` can be
// recognized as referring to this project's own crate root.
func crateName(projectRoot string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(projectRoot, "Cargo.toml"))
	if err != nil {
		return "", false
	}
	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return "", false
	}
	if manifest.Package.Name == "" {
		return "", false
	}
	return strings.ReplaceAll(manifest.Package.Name, "-", "_"), true
}

// ResolveImportPath resolves a `use` path's leading segment ("crate",
// "self", "super", or the crate's own name from Cargo.toml) and the rest
// of the path to a file under src/, trying both the flat "<mod>.rs" and
// directory "<mod>/mod.rs" layouts rustc accepts.
func (a *Adapter) ResolveImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importPath string) (types.FilePath, bool) {
	segments := strings.Split(importPath, "::")
	if len(segments) == 0 {
		return "", false
	}

	var dir string
	switch segments[0] {
	case "crate":
		dir = "src"
		segments = segments[1:]
	case "self":
		dir = filepath.ToSlash(filepath.Dir(sourceFile))
		segments = segments[1:]
	case "super":
		dir = filepath.ToSlash(filepath.Dir(filepath.Dir(sourceFile)))
		for len(segments) > 0 && segments[0] == "super" {
			dir = filepath.ToSlash(filepath.Dir(dir))
			segments = segments[1:]
		}
	default:
		if name, ok := crateName(ctx.ProjectRoot); ok && name == segments[0] {
			dir = "src"
			segments = segments[1:]
		} else {
			return "", false // external crate
		}
	}

	if len(segments) == 0 {
		return "", false
	}
	rel := strings.Join(segments, "/")
	candidates := []string{
		filepath.ToSlash(filepath.Join(dir, rel+".rs")),
		filepath.ToSlash(filepath.Join(dir, rel, "mod.rs")),
	}
	for _, c := range candidates {
		if ctx.FileExists != nil && ctx.FileExists(c) {
			return c, true
		}
	}
	return "", false
}

// ResolveSubmoduleImportPath has no distinct Rust meaning beyond
// ResolveImportPath's own module-file resolution; always ok=false.
func (a *Adapter) ResolveSubmoduleImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importedModulePath string, name string) (types.FilePath, bool) {
	return "", false
}

func (a *Adapter) ClassifyReceiver(node *sitter.Node, content []byte) types.Receiver {
	if node == nil {
		return types.Receiver{}
	}
	text := nodeText(node, content)
	switch node.Kind() {
	case "self":
		return types.Receiver{Kind: types.ReceiverThis, Text: text}
	case "identifier":
		return types.Receiver{Kind: types.ReceiverIdentifier, Text: text, Name: text}
	case "call_expression":
		return types.Receiver{Kind: types.ReceiverCall, Text: text}
	case "field_expression":
		return types.Receiver{Kind: types.ReceiverMember, Text: text}
	case "array_expression", "struct_expression", "string_literal", "integer_literal", "float_literal", "boolean_literal":
		return types.Receiver{Kind: types.ReceiverLiteral, Text: text}
	default:
		return types.Receiver{Kind: types.ReceiverIdentifier, Text: text, Name: text}
	}
}

func (a *Adapter) LiteralType(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Kind() {
	case "array_expression":
		return "Vec", true
	case "string_literal":
		return "String", true
	case "integer_literal":
		return "i64", true
	case "float_literal":
		return "f64", true
	case "boolean_literal":
		return "bool", true
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
