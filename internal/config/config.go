// Package config holds the compiler's configuration surface: the
// WarnFor flags (§6.2), the CLI-facing settings (§6.1), and loading
// either from a YAML file or from cobra/pflag flags, file values acting
// as defaults a flag may override.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// WarnFor holds the six boolean flags selecting which conditions
// generate warnings. All default to true.
type WarnFor struct {
	VarShadowing             bool `yaml:"var_shadowing"`
	RedundantVisibility      bool `yaml:"redundant_visibility"`
	ConstantFoldingNaN       bool `yaml:"constant_folding_nan"`
	ConstantFoldingSignedOU  bool `yaml:"constant_folding_signed_ou"`
	ConstantFoldingUnsignedOU bool `yaml:"constant_folding_unsigned_ou"`
	ConstantFoldingInvalidShift bool `yaml:"constant_folding_invalid_shift"`

	// When holds path-scoped overrides (a glob-like path pattern to a
	// partial override of the flags above), parsed from the
	// `warnFor.when` mini-grammar (§A.3 supplement).
	When []WhenOverride `yaml:"-"`
}

// WhenOverride is one `warnFor.when` entry: for source paths matching
// Pattern, override the named flags.
type WhenOverride struct {
	Pattern string
	Set     map[string]bool
}

// DefaultWarnFor returns the all-warnings-on default.
func DefaultWarnFor() WarnFor {
	return WarnFor{
		VarShadowing:                true,
		RedundantVisibility:         true,
		ConstantFoldingNaN:          true,
		ConstantFoldingSignedOU:     true,
		ConstantFoldingUnsignedOU:   true,
		ConstantFoldingInvalidShift: true,
	}
}

// ForPath returns w with any When override matching path applied on top.
// Later entries in When win over earlier ones for the same flag.
func (w WarnFor) ForPath(path string) WarnFor {
	out := w
	for _, ov := range w.When {
		if !globMatch(ov.Pattern, path) {
			continue
		}
		applyOverride(&out, ov.Set)
	}
	return out
}

func applyOverride(w *WarnFor, set map[string]bool) {
	for name, v := range set {
		switch name {
		case "var_shadowing":
			w.VarShadowing = v
		case "redundant_visibility":
			w.RedundantVisibility = v
		case "constant_folding_nan":
			w.ConstantFoldingNaN = v
		case "constant_folding_signed_ou":
			w.ConstantFoldingSignedOU = v
		case "constant_folding_unsigned_ou":
			w.ConstantFoldingUnsignedOU = v
		case "constant_folding_invalid_shift":
			w.ConstantFoldingInvalidShift = v
		}
	}
}

// globMatch reports whether path matches the "*"/"**" glob pattern
// already extracted from a when-condition by parseCondition (see
// whengrammar.go). Matching itself is plain segment comparison; the
// participle grammar only governs the condition syntax around it.
func globMatch(pattern, path string) bool {
	ok, err := matchSegments(pattern, path)
	return err == nil && ok
}

// CLI holds the settings the driver (§6.1) supplies to a compilation
// run: the starting source, include search path, the WarnFor
// configuration, and the diagnostics rendering format.
type CLI struct {
	Source             string   `yaml:"source"`
	IncludeDirs         []string `yaml:"include_dirs"`
	WarnFor             WarnFor  `yaml:"warn_for"`
	DiagnosticsFormat   string   `yaml:"diagnostics_format"` // "text" or "json"
	Color               bool     `yaml:"color"`
}

// DefaultCLI returns a CLI with all-warnings-on and text-format output.
func DefaultCLI() CLI {
	return CLI{WarnFor: DefaultWarnFor(), DiagnosticsFormat: "text", Color: true}
}

// fileConfig is the on-disk shape loaded from a .coltc.yaml file; it
// layers under flag-supplied values rather than replacing CLI directly,
// since not every CLI field is meaningful in a file (Source is not).
type fileConfig struct {
	IncludeDirs       []string              `yaml:"include_dirs"`
	WarnFor           map[string]bool       `yaml:"warn_for"`
	WarnForWhen       []fileWhenOverride    `yaml:"warn_for_when"`
	DiagnosticsFormat string                `yaml:"diagnostics_format"`
	Color             *bool                 `yaml:"color"`
}

// fileWhenOverride is the on-disk shape of one warnFor.when entry: a
// condition string parsed through the participle grammar in
// whengrammar.go (e.g. `path matches "vendor/**"`) plus the flags it
// overrides when that condition holds.
type fileWhenOverride struct {
	When string          `yaml:"when"`
	Set  map[string]bool `yaml:"set"`
}

// LoadFile reads a .coltc.yaml config file at path and merges it over
// base, file values winning where present. A missing file is not an
// error; LoadFile returns base unchanged.
func LoadFile(path string, base CLI) (CLI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	out := base
	if len(fc.IncludeDirs) > 0 {
		out.IncludeDirs = fc.IncludeDirs
	}
	if fc.DiagnosticsFormat != "" {
		out.DiagnosticsFormat = fc.DiagnosticsFormat
	}
	if fc.Color != nil {
		out.Color = *fc.Color
	}
	applyOverride(&out.WarnFor, fc.WarnFor)
	for _, w := range fc.WarnForWhen {
		pattern, err := parseCondition(w.When)
		if err != nil {
			return base, err
		}
		out.WarnFor.When = append(out.WarnFor.When, WhenOverride{Pattern: pattern, Set: w.Set})
	}
	return out, nil
}
