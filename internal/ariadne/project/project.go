// Package project implements C10, the orchestrator that drives the
// per-file four-pass pipeline (C2-C6), maintains the project-wide
// registries (C7), and exposes the query surface external collaborators
// (CLIs, MCP servers, analyzers) consume. It generalizes
// standardbeagle/lci's indexing.FileIntegrator/MasterIndex pair
// (internal/indexing/pipeline_integrator.go, master_index.go) from a
// language-specific, many-index-type engine into the language-agnostic,
// registry-driven design §4.10 specifies: parse in parallel, mutate the
// registries single-threaded, and recompute resolutions one hop out from
// every touched file.
package project

import (
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter/javascript"
	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter/python"
	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter/rust"
	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter/typescript"
	"github.com/ariadne-lang/ariadne/internal/ariadne/callgraph"
	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/config"
	"github.com/ariadne-lang/ariadne/internal/debug"
	"github.com/ariadne-lang/ariadne/internal/ariadne/definition"
	"github.com/ariadne-lang/ariadne/internal/ariadne/reference"
	"github.com/ariadne-lang/ariadne/internal/ariadne/registry"
	"github.com/ariadne-lang/ariadne/internal/ariadne/resolve"
	"github.com/ariadne-lang/ariadne/internal/ariadne/scope"
	"github.com/ariadne-lang/ariadne/internal/ariadne/typesystem"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// Project owns every registry for one codebase. Concurrent mutation of a
// single Project is the caller's responsibility to prevent (§5) — the
// orchestrator itself does not lock.
type Project struct {
	cfg      *config.Config
	adapters *adapter.Registry

	definitions *registry.DefinitionRegistry
	scopes      *registry.ScopeRegistry
	imports     *registry.ImportGraph
	exports     *registry.ExportRegistry
	types       *registry.TypeRegistry
	references  *registry.ReferenceRegistry

	sources     map[types.FilePath][]byte
	callRefs    map[types.FilePath][]*types.CallReference
	diagnostics map[types.FilePath][]types.Diagnostic
	allExports  map[types.FilePath][]string
}

// New constructs an empty project wired to every supported language.
func New(cfg *config.Config) *Project {
	adapters := adapter.NewRegistry()
	adapters.Register(javascript.New())
	adapters.Register(typescript.New())
	adapters.Register(typescript.NewTSX())
	adapters.Register(python.New())
	adapters.Register(rust.New())

	return &Project{
		cfg:         cfg,
		adapters:    adapters,
		definitions: registry.NewDefinitionRegistry(),
		scopes:      registry.NewScopeRegistry(),
		imports:     registry.NewImportGraph(),
		exports:     registry.NewExportRegistry(),
		types:       registry.NewTypeRegistry(),
		references:  registry.NewReferenceRegistry(),
		sources:     make(map[types.FilePath][]byte),
		callRefs:    make(map[types.FilePath][]*types.CallReference),
		diagnostics: make(map[types.FilePath][]types.Diagnostic),
		allExports:  make(map[types.FilePath][]string),
	}
}

func normalizePath(path string) types.FilePath {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

func (p *Project) registries() *resolve.Registries {
	return &resolve.Registries{
		Definitions: p.definitions,
		Scopes:      p.scopes,
		Imports:     p.imports,
		Exports:     p.exports,
		Types:       p.types,
		References:  p.references,
	}
}

func (p *Project) fileExists(path types.FilePath) bool {
	_, ok := p.sources[path]
	return ok
}

// UpdateFile parses and (re-)indexes one file, then recomputes
// resolutions for it and every file that directly imports it (§4.10).
// Language detection is by extension; an unrecognized extension is a
// no-op (§6).
func (p *Project) UpdateFile(path string, source []byte) []types.Diagnostic {
	file := normalizePath(path)
	lang, ok := p.adapters.ForFile(file)
	if !ok {
		return nil
	}

	pf, diags := p.buildFile(file, source, lang)
	p.applyFile(file, source, lang, pf)

	touched := append([]types.FilePath{file}, p.imports.Dependents(file)...)
	for _, t := range touched {
		p.recomputeCalls(t)
	}
	p.applyIndirectReachability()

	p.diagnostics[file] = diags
	return diags
}

// RemoveFile drops every registry entry file contributed, then
// recomputes resolutions for whatever directly imported it.
func (p *Project) RemoveFile(path string) {
	file := normalizePath(path)
	dependents := p.imports.Dependents(file)

	p.definitions.RemoveFile(file)
	p.scopes.RemoveFile(file)
	p.types.RemoveFile(file)
	p.exports.RemoveFile(file)
	p.references.RemoveFile(file)
	p.imports.RemoveFile(file)

	delete(p.sources, file)
	delete(p.callRefs, file)
	delete(p.diagnostics, file)
	delete(p.allExports, file)

	for _, d := range dependents {
		p.recomputeCalls(d)
	}
	p.applyIndirectReachability()
}

// UpdateFileRange applies a single text edit described by row/column
// points to the file's last known source and reindexes the result.
// Adapters never reuse a prior syntax tree (§4.1 Parse doc) so this is a
// full reparse of the patched content, matching §5's "absent edit info,
// a full parse is used" fallback — here the edit info is consumed one
// layer up, to reconstruct the new source, rather than fed to tree-sitter.
func (p *Project) UpdateFileRange(path string, startPoint, oldEndPoint types.Point, newText string) []types.Diagnostic {
	file := normalizePath(path)
	old, ok := p.sources[file]
	if !ok {
		return []types.Diagnostic{{
			File:     file,
			Severity: types.SeverityError,
			Code:     types.CodeInvariantViolation,
			Message:  "update_file_range on a file with no prior UpdateFile",
		}}
	}
	patched := applyRangeEdit(old, startPoint, oldEndPoint, newText)
	return p.UpdateFile(path, patched)
}

func applyRangeEdit(source []byte, start, oldEnd types.Point, newText string) []byte {
	lines := strings.Split(string(source), "\n")
	if start.Row >= len(lines) || oldEnd.Row >= len(lines) {
		return source
	}
	before := strings.Join(lines[:start.Row], "\n")
	if start.Row > 0 {
		before += "\n"
	}
	before += lines[start.Row][:min(start.Column, len(lines[start.Row]))]

	afterLine := lines[oldEnd.Row]
	after := afterLine[min(oldEnd.Column, len(afterLine)):]
	if oldEnd.Row+1 < len(lines) {
		after += "\n" + strings.Join(lines[oldEnd.Row+1:], "\n")
	}

	return []byte(before + newText + after)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parsedFile is the pure, parallel-safe half of one file's pipeline run:
// everything computed from content alone, before any registry mutation.
type parsedFile struct {
	rootID     types.ScopeId
	scopes     map[types.ScopeId]*types.LexicalScope
	defs       []*types.Definition
	imports    []*types.Definition
	allDefs    []*types.Definition
	types_     map[types.TypeId]*types.TypeDescriptor
	refs       []*types.Reference
	allExports []string // Python __all__ entries, §13's open-question metadata
}

func (p *Project) buildFile(file types.FilePath, source []byte, lang adapter.Adapter) (*parsedFile, []types.Diagnostic) {
	if int64(len(source)) > p.cfg.MaxFileSize {
		return &parsedFile{}, []types.Diagnostic{{
			File: file, Severity: types.SeverityError, Code: types.CodeFileTooLarge,
			Message: "file exceeds configured size limit",
		}}
	}

	tree, err := lang.Parse(source)
	if err != nil || tree == nil {
		return &parsedFile{}, []types.Diagnostic{{
			File: file, Severity: types.SeverityWarning, Code: types.CodeParseError,
			Message: "parser produced no syntax tree; indexed as empty",
		}}
	}
	defer tree.Close()

	queries := lang.Queries()
	q, ok := queries["main"]
	if !ok {
		return &parsedFile{}, []types.Diagnostic{{
			File: file, Severity: types.SeverityWarning, Code: types.CodeCaptureMalformed,
			Message: "no compiled query for this language",
		}}
	}

	caps, err := adapter.DefaultCaptureExecutor.Run(file, q, tree, source)
	var diags []types.Diagnostic
	if err != nil {
		if _, ok := err.(*capture.ErrParseBudgetExceeded); ok {
			diags = append(diags, types.Diagnostic{
				File: file, Severity: types.SeverityError, Code: types.CodeFileTooLarge,
				Message: err.Error(),
			})
		} else {
			diags = append(diags, types.Diagnostic{
				File: file, Severity: types.SeverityWarning, Code: types.CodeCaptureMalformed,
				Message: err.Error(),
			})
		}
	}

	rootID, scopes := scope.Build(file, caps)
	defs := definition.Build(file, source, caps, scopes, lang.Language())
	imports := definition.BuildImports(file, source, caps, scopes, lang.Language())
	definition.ApplyExports(defs, source, caps, lang.Language())

	allDefs := make([]*types.Definition, 0, len(defs)+len(imports))
	allDefs = append(allDefs, defs...)
	allDefs = append(allDefs, imports...)

	typeDescs := typesystem.Build(file, allDefs)
	refs := reference.Build(source, caps, scopes, allDefs, lang)

	var allExports []string
	if lang.Language() == "python" {
		allExports = definition.ExtractPythonAll(source)
	}

	return &parsedFile{
		rootID: rootID, scopes: scopes,
		defs: defs, imports: imports, allDefs: allDefs,
		types_: typeDescs, refs: refs, allExports: allExports,
	}, diags
}

func (p *Project) applyFile(file types.FilePath, source []byte, lang adapter.Adapter, pf *parsedFile) {
	p.sources[file] = source // must be set before Imports.AddFile so fileExists sees this file
	p.definitions.RemoveFile(file)
	p.scopes.RemoveFile(file)
	p.types.RemoveFile(file)
	p.exports.RemoveFile(file)
	p.references.RemoveFile(file)
	p.imports.RemoveFile(file)

	p.definitions.AddFile(file, pf.allDefs)
	p.scopes.AddFile(file, pf.rootID, pf.scopes)
	p.types.AddFile(file, pf.types_)
	p.exports.AddFile(file, pf.allDefs)
	p.references.AddFile(file, pf.refs)
	p.imports.AddFile(file, pf.imports, lang, p.cfg.ProjectRoot, p.fileExists)
	if pf.allExports != nil {
		p.allExports[file] = pf.allExports
	} else {
		delete(p.allExports, file)
	}
}

func (p *Project) recomputeCalls(file types.FilePath) {
	refs := p.references.ByFile(file)
	if refs == nil {
		delete(p.callRefs, file)
		return
	}
	reg := p.registries()
	crs := make([]*types.CallReference, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind != types.RefCall {
			continue
		}
		crs = append(crs, resolve.ResolveCall(reg, file, ref))
	}
	p.callRefs[file] = crs
}

// applyIndirectReachability recomputes §4.9's indirect-reachability
// links fresh over every callback-invocation call site in the project,
// mirroring callgraph.Build's "recomputed into a fresh snapshot" policy
// (§5) rather than threading incremental state through every update:
// for a call `cb(...)` inside function F where cb is one of F's
// parameters, it looks at every call site that calls F and resolves
// whatever concrete, callable value was passed at cb's parameter
// position there.
func (p *Project) applyIndirectReachability() {
	reg := p.registries()

	var all []*types.CallReference
	for _, crs := range p.callRefs {
		all = append(all, crs...)
	}

	callsTo := make(map[types.SymbolId][]*types.CallReference)
	for _, cr := range all {
		for _, res := range cr.Resolutions {
			callsTo[res.SymbolId] = append(callsTo[res.SymbolId], cr)
		}
	}

	for _, cr := range all {
		if !cr.IsCallbackInvocation {
			continue
		}
		cr.IndirectTargets = nil
		for _, site := range callsTo[cr.CallerSymbolId] {
			if cr.CallbackParamIndex >= len(site.Arguments) {
				continue
			}
			argName := site.Arguments[cr.CallbackParamIndex]
			if argName == "" {
				continue
			}
			d, ok := resolve.ResolveName(reg, site.Location.FilePath, argName, site.CallerScopeID)
			if !ok || !d.IsCallable() {
				continue
			}
			cr.IndirectTargets = append(cr.IndirectTargets, d.SymbolId)
		}
	}
}

// UpdateFiles indexes a batch of files: the parallel, parse-only stage
// runs across an errgroup-bounded worker pool; registry mutation is
// applied afterward on the calling goroutine alone, matching §5's
// single-threaded-mutation rule. Dependent recomputation runs once over
// the union of touched files and their one-hop dependents, after every
// file in the batch has been applied.
func (p *Project) UpdateFiles(batch map[string][]byte) map[types.FilePath][]types.Diagnostic {
	type prepared struct {
		file types.FilePath
		lang adapter.Adapter
		pf   *parsedFile
		diag []types.Diagnostic
	}

	files := make([]types.FilePath, 0, len(batch))
	langs := make(map[types.FilePath]adapter.Adapter, len(batch))
	sourceFor := make(map[types.FilePath][]byte, len(batch))
	for path, source := range batch {
		file := normalizePath(path)
		lang, ok := p.adapters.ForFile(file)
		if !ok {
			continue
		}
		files = append(files, file)
		langs[file] = lang
		sourceFor[file] = source
	}

	results := make([]prepared, len(files))
	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			pf, diag := p.buildFile(file, sourceFor[file], langs[file])
			results[i] = prepared{file: file, lang: langs[file], pf: pf, diag: diag}
			return nil
		})
	}
	_ = g.Wait() // buildFile never returns an error; diagnostics carry failures instead

	out := make(map[types.FilePath][]types.Diagnostic, len(results))
	touched := make(map[types.FilePath]bool, len(results))
	for _, r := range results {
		p.applyFile(r.file, sourceFor[r.file], r.lang, r.pf)
		p.diagnostics[r.file] = r.diag
		out[r.file] = r.diag
		touched[r.file] = true
	}
	for _, r := range results {
		for _, dep := range p.imports.Dependents(r.file) {
			touched[dep] = true
		}
	}
	for file := range touched {
		p.recomputeCalls(file)
	}
	p.applyIndirectReachability()

	debug.LogIndex("batch update indexed %d files", len(results))
	return out
}
