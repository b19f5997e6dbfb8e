package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDecodeEmptyKeepsDefaults(t *testing.T) {
	r, err := Decode(strings.NewReader(""), analysis.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultRules(), r)
}

func TestLoadFileOverlay(t *testing.T) {
	path := writeRules(t, `
taxonomy:
  technical: [go, rust, postgres]
trends:
  - skill: WebAssembly
    trendPercent: 40
    salaryImpact: 8000
    rationale: Edge runtimes
personas:
  - id: startup
    keywords: [ownership, velocity]
    summaryTemplate: "Builder who ships."
`)

	base := analysis.DefaultRules()
	r, err := LoadFile(path, base)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "rust", "postgres"}, r.Taxonomy.Technical)
	assert.Equal(t, base.Taxonomy.ActionVerbs, r.Taxonomy.ActionVerbs, "lists absent from the file are kept")
	require.Len(t, r.Trends, 1)
	assert.Equal(t, "WebAssembly", r.Trends[0].Skill)

	startup, ok := r.Persona(analysis.PersonaStartup)
	require.True(t, ok)
	assert.Equal(t, []string{"ownership", "velocity"}, startup.Keywords)
	assert.Equal(t, "Builder who ships.", startup.SummaryTemplate)
	baseStartup, _ := base.Persona(analysis.PersonaStartup)
	assert.Equal(t, baseStartup.DisplayName, startup.DisplayName)
	assert.Equal(t, baseStartup.Phrases, startup.Phrases)

	assert.Equal(t, analysis.DefaultRules(), base, "base must not be mutated")
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		code     string
		errorMsg string
	}{
		{
			name:     "weights are not loadable",
			body:     "weights:\n  keywords: 50\n",
			code:     errors.ErrCodeInvalidRules,
			errorMsg: "failed to parse rules file",
		},
		{
			name:     "empty category",
			body:     "taxonomy:\n  softSkills: []\n",
			code:     errors.ErrCodeInvalidRules,
			errorMsg: "taxonomy.softSkills must not be empty",
		},
		{
			name:     "duplicate trend",
			body:     "trends:\n  - skill: Rust\n  - skill: rust\n",
			code:     errors.ErrCodeInvalidRules,
			errorMsg: "share the id trending-rust",
		},
		{
			name:     "trend ids collide",
			body:     "trends:\n  - skill: C++\n  - skill: C#\n",
			code:     errors.ErrCodeInvalidRules,
			errorMsg: "share the id trending-c",
		},
		{
			name:     "unknown persona",
			body:     "personas:\n  - id: government\n    keywords: [clearance]\n",
			code:     errors.ErrCodeInvalidRules,
			errorMsg: "unknown persona id",
		},
		{
			name:     "malformed yaml",
			body:     "taxonomy: [",
			code:     errors.ErrCodeInvalidRules,
			errorMsg: "failed to parse rules file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeRules(t, tt.body), analysis.DefaultRules())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), analysis.DefaultRules())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.CodeOf(err))
}
