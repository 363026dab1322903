package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultWarnForIsAllTrue(t *testing.T) {
	w := DefaultWarnFor()
	require.True(t, w.VarShadowing)
	require.True(t, w.RedundantVisibility)
	require.True(t, w.ConstantFoldingNaN)
	require.True(t, w.ConstantFoldingSignedOU)
	require.True(t, w.ConstantFoldingUnsignedOU)
	require.True(t, w.ConstantFoldingInvalidShift)
}

func TestForPathAppliesMatchingOverrideOnly(t *testing.T) {
	w := DefaultWarnFor()
	w.When = []WhenOverride{
		{Pattern: "vendor/**", Set: map[string]bool{"var_shadowing": false}},
	}

	require.False(t, w.ForPath("vendor/lib/x.colt").VarShadowing)
	require.True(t, w.ForPath("src/x.colt").VarShadowing)
}

func TestForPathLaterOverrideWins(t *testing.T) {
	w := DefaultWarnFor()
	w.When = []WhenOverride{
		{Pattern: "**", Set: map[string]bool{"var_shadowing": false}},
		{Pattern: "**", Set: map[string]bool{"var_shadowing": true}},
	}

	require.True(t, w.ForPath("anything.colt").VarShadowing)
}

func TestGlobMatchDoubleStarCrossesSegments(t *testing.T) {
	require.True(t, globMatch("vendor/**", "vendor/a/b/c.colt"))
	require.True(t, globMatch("vendor/**", "vendor/c.colt"))
	require.False(t, globMatch("vendor/**", "src/c.colt"))
}

func TestGlobMatchSingleStarIsOneSegment(t *testing.T) {
	require.True(t, globMatch("*.colt", "x.colt"))
	require.False(t, globMatch("*.colt", "a/x.colt"))
}

func TestParseConditionExtractsGlob(t *testing.T) {
	pattern, err := parseCondition(`path matches "vendor/**"`)
	require.NoError(t, err)
	require.Equal(t, "vendor/**", pattern)
}

func TestParseConditionRejectsUnknownField(t *testing.T) {
	_, err := parseCondition(`module matches "vendor/**"`)
	require.Error(t, err)
}

func TestLoadFileMissingReturnsBaseUnchanged(t *testing.T) {
	base := DefaultCLI()
	out, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), base)
	require.NoError(t, err)
	require.Equal(t, base, out)
}

func TestLoadFileOverridesBaseAndParsesWhen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".coltc.yaml")
	contents := `
include_dirs:
  - lib
diagnostics_format: json
color: false
warn_for:
  var_shadowing: false
warn_for_when:
  - when: 'path matches "vendor/**"'
    set:
      redundant_visibility: false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	out, err := LoadFile(path, DefaultCLI())
	require.NoError(t, err)
	require.Equal(t, []string{"lib"}, out.IncludeDirs)
	require.Equal(t, "json", out.DiagnosticsFormat)
	require.False(t, out.Color)
	require.False(t, out.WarnFor.VarShadowing)

	require.Len(t, out.WarnFor.When, 1)
	require.Equal(t, "vendor/**", out.WarnFor.When[0].Pattern)
	require.False(t, out.WarnFor.ForPath("vendor/x.colt").RedundantVisibility)
	require.True(t, out.WarnFor.ForPath("src/x.colt").RedundantVisibility)
}

func TestLoadFileRejectsMalformedWhenCondition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".coltc.yaml")
	contents := `
warn_for_when:
  - when: "not a valid condition"
    set:
      var_shadowing: false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := LoadFile(path, DefaultCLI())
	require.Error(t, err)
}
