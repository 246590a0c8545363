// Package config parses .ariadne.kdl, mirroring standardbeagle/lci's
// .lci.kdl loader (internal/config/kdl_config.go) trimmed to the
// settings a semantic index actually needs: include/exclude glob
// patterns, the parser's size ceiling and byte-budget margin, and
// per-language toggles.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Config is the resolved project configuration, defaulted and then
// overridden field-by-field by whatever .ariadne.kdl supplies.
type Config struct {
	ProjectRoot string

	// MaxFileSize is the hard per-file size ceiling (§5 backpressure);
	// files over this fail with FileTooLarge rather than being parsed.
	MaxFileSize int64

	// ParseBudgetMargin is added on top of a file's UTF-8 byte length
	// when sizing the parser's working buffer, absorbing tree-sitter's
	// internal overhead without a second allocation mid-parse.
	ParseBudgetMargin int64

	Include []string
	Exclude []string

	Languages map[string]bool // "javascript"/"typescript"/"python"/"rust" -> enabled
}

// Default returns the configuration used when no .ariadne.kdl is present.
func Default(projectRoot string) *Config {
	return &Config{
		ProjectRoot:       projectRoot,
		MaxFileSize:       10 * 1024 * 1024,
		ParseBudgetMargin: 4096,
		Include:           []string{},
		Exclude: []string{
			"**/node_modules/**", "**/.git/**", "**/dist/**", "**/build/**",
			"**/target/**", "**/__pycache__/**", "**/.venv/**",
		},
		Languages: map[string]bool{
			"javascript": true, "typescript": true, "python": true, "rust": true,
		},
	}
}

// Load reads .ariadne.kdl from projectRoot, if present, and applies it on
// top of Default. A missing file is not an error.
func Load(projectRoot string) (*Config, error) {
	cfg := Default(projectRoot)

	path := filepath.Join(projectRoot, ".ariadne.kdl")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading .ariadne.kdl: %w", err)
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("parsing .ariadne.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "max_file_size":
			if s, ok := firstStringArg(n); ok {
				if sz, err := parseSize(s); err == nil {
					cfg.MaxFileSize = sz
				}
			} else if v, ok := firstIntArg(n); ok {
				cfg.MaxFileSize = int64(v)
			}
		case "parse_budget_margin":
			if v, ok := firstIntArg(n); ok {
				cfg.ParseBudgetMargin = int64(v)
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		case "languages":
			for _, cn := range n.Children {
				if b, ok := firstBoolArg(cn); ok {
					cfg.Languages[nodeName(cn)] = b
				}
			}
		}
	}

	return cfg, nil
}

// ParserBudget returns the buffer size the parser should size for a file
// of contentLen bytes: the content itself plus the configured margin.
func (c *Config) ParserBudget(contentLen int) int64 {
	return int64(contentLen) + c.ParseBudgetMargin
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var multiplier int64 = 1
	var numStr string
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, err
	}
	return num * multiplier, nil
}
