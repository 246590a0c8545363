package registry

import "github.com/ariadne-lang/ariadne/internal/ariadne/types"

// ExportRegistry indexes each file's exported definitions by their
// export name, and implements resolve_export_chain: following a
// re-export (`export {x} from './other'`) to the definition it
// ultimately names, with cycle detection over visited (file, name)
// pairs so a re-export cycle degrades to "unresolved" instead of an
// infinite loop (§4.7).
type ExportRegistry struct {
	byFileAndName map[string]*types.Definition
}

// NewExportRegistry constructs an empty export registry.
func NewExportRegistry() *ExportRegistry {
	return &ExportRegistry{byFileAndName: make(map[string]*types.Definition)}
}

func exportKey(file types.FilePath, name string) string {
	return string(file) + "\x00" + name
}

// AddFile indexes every exported (or re-exported import) definition in
// file by the name it is exported under.
func (r *ExportRegistry) AddFile(file types.FilePath, defs []*types.Definition) {
	for _, d := range defs {
		name := d.Name
		if d.Export != nil && d.Export.ExportName != "" {
			name = d.Export.ExportName
		}
		if d.IsExported {
			r.byFileAndName[exportKey(file, name)] = d
		}
		if d.Import != nil && d.Import.IsReexport {
			r.byFileAndName[exportKey(file, name)] = d
		}
	}
}

// RemoveFile drops every export entry for file. Since entries are keyed
// by (file, name), a simple prefix scan suffices.
func (r *ExportRegistry) RemoveFile(file types.FilePath) {
	prefix := string(file) + "\x00"
	for k := range r.byFileAndName {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(r.byFileAndName, k)
		}
	}
}

// ResolveExportChain follows re-exports starting at (file, name) until it
// reaches a genuine, non-reexport definition, or detects a cycle. ok is
// false when the name isn't exported from file, or the chain cycles
// before reaching a concrete definition.
func (r *ExportRegistry) ResolveExportChain(file types.FilePath, name string, imports *ImportGraph) (*types.Definition, bool) {
	visited := make(map[string]bool)
	return r.resolveChain(file, name, imports, visited)
}

func (r *ExportRegistry) resolveChain(file types.FilePath, name string, imports *ImportGraph, visited map[string]bool) (*types.Definition, bool) {
	key := exportKey(file, name)
	if visited[key] {
		return nil, false
	}
	visited[key] = true

	d, ok := r.byFileAndName[key]
	if !ok {
		return nil, false
	}
	if d.Import == nil || !d.Import.IsReexport {
		return d, true
	}

	sourceName := d.Import.OriginalName
	if sourceName == "" {
		sourceName = d.Name
	}
	ri, ok := imports.ResolveLocalImport(file, d.Name)
	if !ok || !ri.Resolved {
		return nil, false
	}
	return r.resolveChain(ri.Target, sourceName, imports, visited)
}
