package definition

import (
	"regexp"
	"strings"

	"github.com/ariadne-lang/ariadne/internal/ariadne/capture"
	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
)

// ApplyExports marks definitions exported per each language's own
// convention: JS/TS via `export` capture overlap, Python via the
// leading-underscore convention (no `export` keyword exists), Rust via
// a `pub` keyword text scan, since none of these are uniform enough to
// fold into the shared capture schema.
func ApplyExports(defs []*types.Definition, content []byte, captures []capture.CaptureNode, language string) {
	switch language {
	case "javascript", "typescript", "tsx":
		applyJSExports(defs, captures)
	case "python":
		applyPythonExports(defs)
	case "rust":
		applyRustExports(defs, content)
	}
}

func applyJSExports(defs []*types.Definition, captures []capture.CaptureNode) {
	var exportSpans []types.Location
	for _, c := range captures {
		if c.Category == capture.CategoryExport {
			exportSpans = append(exportSpans, c.Location)
		}
	}
	for _, d := range defs {
		for _, span := range exportSpans {
			if span.Contains(d.Location) {
				d.IsExported = true
				if d.Export == nil {
					d.Export = &types.ExportMeta{}
				}
				break
			}
		}
	}
}

// applyPythonExports exports every module-level (non-import) definition
// whose name doesn't start with an underscore, per convention. §13's
// open-question decision: __all__ (see ExtractPythonAll, below) is
// parsed as file metadata the orchestrator attaches separately, but does
// not override this per-symbol convention.
func applyPythonExports(defs []*types.Definition) {
	for _, d := range defs {
		if d.Kind == types.DefImport || d.Kind == types.DefParameter {
			continue
		}
		if !strings.HasPrefix(string(d.DefiningScopeID), string(types.ScopeModule)+":") {
			continue
		}
		if !strings.HasPrefix(d.Name, "_") {
			d.IsExported = true
		}
	}
}

func applyRustExports(defs []*types.Definition, content []byte) {
	for _, d := range defs {
		start := d.Location.StartLine
		_ = start
		// A definition is pub when its source line (up to the keyword
		// introducing the construct) contains "pub ".
		if lineHasPub(content, d.Location) {
			d.IsExported = true
		}
	}
}

func lineHasPub(content []byte, loc types.Location) bool {
	lines := strings.Split(string(content), "\n")
	if loc.StartLine-1 < 0 || loc.StartLine-1 >= len(lines) {
		return false
	}
	line := lines[loc.StartLine-1]
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "pub ") || strings.HasPrefix(trimmed, "pub(")
}

var allAssignmentPattern = regexp.MustCompile(`(?m)^__all__\s*(?::[^=]+)?=\s*[\[\(]([^\]\)]*)[\]\)]`)
var allEntryPattern = regexp.MustCompile(`["']([^"']+)["']`)

// ExtractPythonAll scans a Python file's source text for a module-level
// `__all__ = [...]` assignment and returns its string entries, in
// source order. Per §13's open-question decision, this is attached to
// the file's metadata for callers that want to honor it; the resolver
// itself (applyPythonExports, above) ignores it and keeps exporting by
// the leading-underscore convention.
func ExtractPythonAll(content []byte) []string {
	m := allAssignmentPattern.FindSubmatch(content)
	if m == nil {
		return nil
	}
	entries := allEntryPattern.FindAllSubmatch(m[1], -1)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e[1]))
	}
	return out
}
