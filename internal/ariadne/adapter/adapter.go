// Package adapter defines the Language Adapter contract (C1): the single
// seam between a concrete grammar (tree-sitter) and the rest of the
// pipeline. It is grounded on standardbeagle/lci's internal/symbollinker
// SymbolExtractor/ExtractorRegistry pair (one adapter per language,
// registered by file extension) merged with internal/parser's compiled
// tree-sitter query setup, generalized to the four-language, capture-schema
// contract §4.1 specifies.
package adapter

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// ImportContext supplies a resolve_import_path call with everything it
// needs beyond the two path strings: the project root (for module-rooted
// resolution, e.g. Go-style or Rust crate-style imports) and a membership
// test against files currently known to the project (so resolution can
// distinguish "this path exists in the project" from "this is external").
type ImportContext struct {
	ProjectRoot string
	FileExists  func(path types.FilePath) bool
}

// Adapter is the per-language contract C1 describes.
type Adapter interface {
	// Language is this adapter's canonical name, matching §6's detection
	// table values ("javascript", "typescript", "python", "rust").
	Language() string

	// FileExtensions lists the extensions this adapter claims.
	FileExtensions() []string

	// CanHandle reports whether path's extension belongs to this adapter.
	CanHandle(path string) bool

	// Parse parses content into a fresh syntax tree. Matching the
	// teacher's own parser (which always reparses whole-file rather than
	// feeding tree-sitter an InputEdit), update_file_range (§5/§6) is a
	// full reparse of the new content; the incremental story lives in the
	// registry-level one-hop recomputation C10 performs afterward, not in
	// tree-sitter's own edit/reuse machinery.
	Parse(content []byte) (*sitter.Tree, error)

	// Queries returns this language's compiled capture queries, keyed by
	// an adapter-chosen group name. Every capture the queries emit is
	// named "@category.entity[.qualifier]" per §4.1's schema; the group
	// key itself carries no meaning to the rest of the pipeline, callers
	// dispatch purely on each CaptureNode's Category.
	// Scope-forming captures use entity names drawn from a fixed
	// vocabulary the scope builder (C3) understands directly: "module",
	// "function", "arrow", "class", "block", "loop", "comprehension".
	// Each such capture spans the whole construct node (header and body
	// together), so nested scopes naturally sort by containment.
	Queries() map[string]*sitter.Query

	// DetectTestFile reports whether path is a test file by this
	// language's convention (e.g. "_test.go"-style suffixes, "test_"
	// prefixes, "__tests__" directories).
	DetectTestFile(path string) bool

	// ResolveImportPath resolves a source-level import/require string to
	// a project file path. ok is false when the import targets something
	// outside the project (stdlib, third-party package, or simply not
	// found) — that is not an error, per §7 UnresolvedImport.
	ResolveImportPath(ctx ImportContext, sourceFile types.FilePath, importPath string) (target types.FilePath, ok bool)

	// ResolveSubmoduleImportPath resolves `name` as a submodule of
	// whatever resolve_import_path.sourceModule points to. Only Python
	// meaningfully implements this (package/submodule files, §4.4/§4.9);
	// other adapters return ok=false unconditionally.
	ResolveSubmoduleImportPath(ctx ImportContext, sourceFile types.FilePath, importedModulePath string, name string) (target types.FilePath, ok bool)

	// ClassifyReceiver inspects a call/member-access receiver's syntax
	// node and returns its symbolic descriptor. This is purely syntactic
	// classification (identifier vs this/self vs literal vs nested call
	// vs member chain) — resolving an identifier receiver's tracked type
	// is the Call Resolver's job (C9), since it needs registry state this
	// package deliberately does not depend on.
	ClassifyReceiver(node *sitter.Node, content []byte) types.Receiver

	// LiteralType returns the built-in type name of a literal expression
	// node (e.g. array/object/string/number), used for §4.9(b) step 1's
	// "Literal/constructor expression" receiver case. ok is false when
	// node is not a literal this adapter recognizes.
	LiteralType(node *sitter.Node, content []byte) (typeName string, ok bool)
}

// Registry maps file paths and language names to their Adapter.
type Registry struct {
	byLanguage map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{byLanguage: make(map[string]Adapter)}
}

// Register adds an adapter, keyed by its own Language().
func (r *Registry) Register(a Adapter) {
	r.byLanguage[a.Language()] = a
}

// ByLanguage looks up an adapter by exact language name.
func (r *Registry) ByLanguage(language string) (Adapter, bool) {
	a, ok := r.byLanguage[language]
	return a, ok
}

// ForFile picks the adapter that claims path's extension. Matches §6's
// "Language detection: by file extension" table; unknown extensions
// return ok=false, signaling a no-op update to the caller.
func (r *Registry) ForFile(path string) (Adapter, bool) {
	for _, a := range r.byLanguage {
		if a.CanHandle(path) {
			return a, true
		}
	}
	return nil, false
}

// Languages lists every registered language name.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		out = append(out, lang)
	}
	return out
}

// DefaultCaptureExecutor is shared by every adapter's caller; kept here
// so project/orchestrator code doesn't need to import the capture package
// directly just to run a query.
var DefaultCaptureExecutor = capture.NewExecutor()
