// Package python implements the C1 language adapter for Python, grounded
// on standardbeagle/lci's internal/parser.setupPython query plus
// internal/symbollinker/python_extractor.go's manual import-statement
// walk (which this package's submodule resolution generalizes into
// resolve_submodule_import_path, §4.4/§4.6/§4.9(3)).
package python

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

const queryText = `
(module) @scope.module

(function_definition name: (identifier) @definition.function.name) @scope.function
(function_definition name: (identifier) @definition.function.name) @definition.function
(lambda) @scope.arrow

(class_definition name: (identifier) @definition.class.name) @scope.class
(class_definition name: (identifier) @definition.class.name) @definition.class

(assignment left: (identifier) @definition.variable.name) @definition.variable

(for_statement) @scope.loop
(while_statement) @scope.loop
(with_statement) @scope.block
(try_statement) @scope.block
(list_comprehension) @scope.comprehension
(dictionary_comprehension) @scope.comprehension
(set_comprehension) @scope.comprehension
(generator_expression) @scope.comprehension

(import_statement) @import.statement
(import_from_statement) @import.statement

(call function: (identifier) @reference.call.name) @reference.call
(call function: (attribute attribute: (identifier) @reference.call.name)) @reference.call
(attribute attribute: (identifier) @reference.member_access.name) @reference.member_access
(assignment left: (identifier) @reference.write.name) @reference.write
(identifier) @reference.read.name
`

// Adapter implements adapter.Adapter for Python.
type Adapter struct {
	language *sitter.Language
}

// New constructs the Python adapter.
func New() *Adapter {
	return &Adapter{language: sitter.NewLanguage(tree_sitter_python.Language())}
}

func (a *Adapter) Language() string { return "python" }

func (a *Adapter) FileExtensions() []string { return []string{".py", ".pyw", ".pyi"} }

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
	return strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test.py") ||
		strings.Contains(path, "/tests/") || strings.HasPrefix(path, "tests/")
}

// ResolveImportPath resolves a dotted module path ("pkg.sub.mod" or
// relative ".sub.mod") to a project file, trying both "<path>.py" and
// "<path>/__init__.py" the way CPython's package loader does.
func (a *Adapter) ResolveImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importPath string) (types.FilePath, bool) {
	base := dottedModuleToPath(ctx, sourceFile, importPath)
	if base == "" {
		return "", false
	}
	return findPythonModuleFile(ctx, base)
}

// ResolveSubmoduleImportPath implements `from pkg import submodule`: the
// name being imported might be an attribute of pkg's __init__.py, or it
// might itself be a file pkg/submodule.py — the module-as-named case
// tracked by ImportInfo.IsModuleAsNamed. This tries the latter.
func (a *Adapter) ResolveSubmoduleImportPath(ctx adapter.ImportContext, sourceFile types.FilePath, importedModulePath string, name string) (types.FilePath, bool) {
	packageBase := dottedModuleToPath(ctx, sourceFile, importedModulePath)
	if packageBase == "" {
		return "", false
	}
	candidate := packageBase + "/" + name
	return findPythonModuleFile(ctx, candidate)
}

func findPythonModuleFile(ctx adapter.ImportContext, base string) (types.FilePath, bool) {
	if ctx.FileExists == nil {
		return "", false
	}
	direct := base + ".py"
	if ctx.FileExists(direct) {
		return direct, true
	}
	initFile := base + "/__init__.py"
	if ctx.FileExists(initFile) {
		return initFile, true
	}
	return "", false
}

// dottedModuleToPath turns "pkg.sub" (absolute) or ".sub"/"..sub"
// (relative, dot count = levels above sourceFile's package) into a
// project-relative path with no extension.
func dottedModuleToPath(ctx adapter.ImportContext, sourceFile types.FilePath, modulePath string) string {
	if modulePath == "" {
		return ""
	}
	if strings.HasPrefix(modulePath, ".") {
		level := 0
		for level < len(modulePath) && modulePath[level] == '.' {
			level++
		}
		rest := modulePath[level:]
		dir := filepath.Dir(sourceFile)
		for i := 1; i < level; i++ {
			dir = filepath.Dir(dir)
		}
		if rest == "" {
			return filepath.ToSlash(dir)
		}
		return filepath.ToSlash(filepath.Join(dir, strings.ReplaceAll(rest, ".", "/")))
	}
	return strings.ReplaceAll(modulePath, ".", "/")
}

func (a *Adapter) ClassifyReceiver(node *sitter.Node, content []byte) types.Receiver {
	if node == nil {
		return types.Receiver{}
	}
	text := nodeText(node, content)
	switch node.Kind() {
	case "identifier":
		if text == "self" {
			return types.Receiver{Kind: types.ReceiverSelf, Text: text}
		}
		return types.Receiver{Kind: types.ReceiverIdentifier, Text: text, Name: text}
	case "call":
		return types.Receiver{Kind: types.ReceiverCall, Text: text}
	case "attribute":
		return types.Receiver{Kind: types.ReceiverMember, Text: text}
	case "list", "dictionary", "set", "string", "integer", "float", "true", "false", "none":
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
	case "list":
		return "list", true
	case "dictionary":
		return "dict", true
	case "set":
		return "set", true
	case "tuple":
		return "tuple", true
	case "string":
		return "str", true
	case "integer":
		return "int", true
	case "float":
		return "float", true
	case "true", "false":
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
