package registry

import (
	"github.com/ariadne-lang/ariadne/internal/ariadne/adapter"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// ResolvedImport pairs an import Definition with the file it was
// resolved to, when resolution succeeded.
type ResolvedImport struct {
	Definition *types.Definition
	Target     types.FilePath
	Resolved   bool
}

// ImportGraph tracks, per file, every import it declares and what file
// (if any) each one resolves to, plus the reverse-dependents index C10
// uses to find one-hop recomputation targets after an update (§4.10).
type ImportGraph struct {
	byFile            map[types.FilePath][]ResolvedImport
	reverseDependents map[types.FilePath]map[types.FilePath]bool
}

// NewImportGraph constructs an empty import graph.
func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		byFile:            make(map[types.FilePath][]ResolvedImport),
		reverseDependents: make(map[types.FilePath]map[types.FilePath]bool),
	}
}

// AddFile resolves and records file's import definitions. fileExists
// should reflect the FULL project file set (including file itself),
// since resolution needs to know which candidate paths are real project
// files versus external packages.
func (g *ImportGraph) AddFile(file types.FilePath, imports []*types.Definition, lang adapter.Adapter, projectRoot string, fileExists func(types.FilePath) bool) {
	ctx := adapter.ImportContext{ProjectRoot: projectRoot, FileExists: fileExists}
	var resolved []ResolvedImport
	for _, imp := range imports {
		if imp.Import == nil {
			continue
		}
		// Python module-as-named: `from pkg import submodule` where
		// submodule is itself a file, not an attribute of pkg. Tried
		// first: when pkg/__init__.py also exists, ResolveImportPath
		// below would otherwise resolve "pkg" successfully and mask the
		// submodule entirely, even though submodule is what was named.
		target, ok := types.FilePath(""), false
		if imp.Import.Kind == types.ImportNamed {
			if sub, subOK := lang.ResolveSubmoduleImportPath(ctx, file, imp.Import.SourceModulePath, imp.Import.LocalName); subOK {
				target, ok = sub, true
				imp.Import.IsModuleAsNamed = true
			}
		}
		if !ok {
			target, ok = lang.ResolveImportPath(ctx, file, imp.Import.SourceModulePath)
		}
		ri := ResolvedImport{Definition: imp, Target: target, Resolved: ok}
		resolved = append(resolved, ri)
		if ok {
			if g.reverseDependents[target] == nil {
				g.reverseDependents[target] = make(map[types.FilePath]bool)
			}
			g.reverseDependents[target][file] = true
		}
	}
	g.byFile[file] = resolved
}

// RemoveFile drops file's own import records and its entries in other
// files' reverse-dependents sets. The set of files that import file is
// kept, so a re-indexed file still finds its dependents.
func (g *ImportGraph) RemoveFile(file types.FilePath) {
	for _, ri := range g.byFile[file] {
		if ri.Resolved {
			if deps, ok := g.reverseDependents[ri.Target]; ok {
				delete(deps, file)
			}
		}
	}
	delete(g.byFile, file)
}

// Imports returns file's resolved import records.
func (g *ImportGraph) Imports(file types.FilePath) []ResolvedImport {
	return g.byFile[file]
}

// Dependents returns every file that imports `file` directly (one hop),
// the recomputation set C10's update_file uses (§4.10).
func (g *ImportGraph) Dependents(file types.FilePath) []types.FilePath {
	deps, ok := g.reverseDependents[file]
	if !ok {
		return nil
	}
	out := make([]types.FilePath, 0, len(deps))
	for f := range deps {
		out = append(out, f)
	}
	return out
}

// ResolveLocalImport finds the resolved import record in `file` that
// binds `localName`, used by the name resolver (C8) when a lookup falls
// through a file's own scopes to its import table.
func (g *ImportGraph) ResolveLocalImport(file types.FilePath, localName string) (ResolvedImport, bool) {
	for _, ri := range g.byFile[file] {
		if ri.Definition.Name == localName {
			return ri, true
		}
	}
	return ResolvedImport{}, false
}
