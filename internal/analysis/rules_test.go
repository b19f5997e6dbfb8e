package analysis

import (
	"testing"

	"resumeradar/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesValid(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())
	assert.Len(t, rules.Trends, 8)
	assert.Len(t, rules.Personas, 3)

	faang, ok := rules.Persona(PersonaFAANG)
	require.True(t, ok)
	assert.Equal(t, []string{"scalability", "distributed systems", "microservices"}, faang.Keywords[:3])
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"empty technical", func(r *Rules) { r.Taxonomy.Technical = nil }},
		{"blank soft skill", func(r *Rules) { r.Taxonomy.SoftSkills = append(r.Taxonomy.SoftSkills, "  ") }},
		{"no trends", func(r *Rules) { r.Trends = nil }},
		{"duplicate trend", func(r *Rules) { r.Trends = append(r.Trends, TrendEntry{Skill: "rust"}) }},
		{"trend ids collide", func(r *Rules) {
			r.Trends = append(r.Trends, TrendEntry{Skill: "C++"}, TrendEntry{Skill: "C#"})
		}},
		{"trend ids collide on punctuation", func(r *Rules) { r.Trends = append(r.Trends, TrendEntry{Skill: "Data-Engineering"}) }},
		{"negative trend", func(r *Rules) { r.Trends[0].SalaryImpact = -1 }},
		{"missing persona", func(r *Rules) { r.Personas = r.Personas[:2] }},
		{"unknown persona", func(r *Rules) { r.Personas = append(r.Personas, PersonaTemplate{ID: "agency", Keywords: []string{"x"}}) }},
		{"persona without keywords", func(r *Rules) { r.Personas[1].Keywords = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			err := rules.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRules, errors.CodeOf(err))
		})
	}
}

func TestTrendOverlayTableOrder(t *testing.T) {
	overlay := NewTrendOverlay(DefaultTrends(), SubstringMatcher{})

	got := overlay.Unmatched(Normalize("generative ai and KUBERNETES"), 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Machine Learning", got[0].Skill)
	assert.Equal(t, "Terraform", got[1].Skill)

	all := "Generative AI, Machine Learning, Kubernetes, Terraform, Rust, GraphQL, Cybersecurity, Data Engineering"
	assert.Empty(t, overlay.Unmatched(Normalize(all), 2))

	one := "Generative AI, Machine Learning, Kubernetes, Terraform, Rust, GraphQL, Cybersecurity"
	got = overlay.Unmatched(Normalize(one), 2)
	require.Len(t, got, 1)
	assert.Equal(t, "Data Engineering", got[0].Skill)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "generative-ai", slugify("Generative AI"))
	assert.Equal(t, "c-c", slugify(" C / C++ "))
	assert.Equal(t, "item", slugify("++"))
}
