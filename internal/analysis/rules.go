package analysis

import (
	"fmt"
	"slices"
	"strings"

	"resumeradar/internal/errors"
)

// Rules bundles the static tables the engine reads. A Rules value is never mutated
// after it is handed to an Engine
type Rules struct {
	Taxonomy Taxonomy          `yaml:"taxonomy" json:"taxonomy"`
	Trends   []TrendEntry      `yaml:"trends" json:"trends"`
	Personas []PersonaTemplate `yaml:"personas" json:"personas"`
}

// DefaultRules returns the built-in tables
func DefaultRules() Rules {
	return Rules{
		Taxonomy: DefaultTaxonomy(),
		Trends:   DefaultTrends(),
		Personas: DefaultPersonas(),
	}
}

// Persona looks up a template by id
func (r Rules) Persona(id PersonaID) (PersonaTemplate, bool) {
	for _, p := range r.Personas {
		if p.ID == id {
			return p, true
		}
	}
	return PersonaTemplate{}, false
}

// Clone returns a deep copy
func (r Rules) Clone() Rules {
	out := Rules{
		Taxonomy: r.Taxonomy.clone(),
		Trends:   slices.Clone(r.Trends),
		Personas: make([]PersonaTemplate, len(r.Personas)),
	}
	for i, p := range r.Personas {
		out.Personas[i] = p.clone()
	}
	return out
}

// Validate checks the tables are usable by the scorers and suggestion rules
func (r Rules) Validate() error {
	lists := []struct {
		name  string
		terms []string
	}{
		{"taxonomy.technical", r.Taxonomy.Technical},
		{"taxonomy.actionVerbs", r.Taxonomy.ActionVerbs},
		{"taxonomy.metrics", r.Taxonomy.Metrics},
		{"taxonomy.softSkills", r.Taxonomy.SoftSkills},
	}
	for _, l := range lists {
		if len(l.terms) == 0 {
			return invalidRules("%s must not be empty", l.name)
		}
		if slices.ContainsFunc(l.terms, isBlank) {
			return invalidRules("%s contains an empty term", l.name)
		}
	}

	if len(r.Trends) == 0 {
		return invalidRules("trends must not be empty")
	}
	// skills are keyed by the slug of their suggestion id, so "C++" and "C#" collide
	seen := make(map[string]string, len(r.Trends))
	for _, t := range r.Trends {
		if strings.TrimSpace(t.Skill) == "" {
			return invalidRules("trend entry with empty skill")
		}
		key := slugify(t.Skill)
		if prev, ok := seen[key]; ok {
			return invalidRules("trend skills %q and %q share the id trending-%s", prev, t.Skill, key)
		}
		seen[key] = t.Skill
		if t.TrendPercent < 0 || t.SalaryImpact < 0 {
			return invalidRules("trend %q has a negative value", t.Skill)
		}
	}

	for _, id := range KnownPersonas {
		p, ok := r.Persona(id)
		if !ok {
			return invalidRules("persona %q is missing", id)
		}
		if len(p.Keywords) == 0 {
			return invalidRules("persona %q has no keywords", id)
		}
		if slices.ContainsFunc(p.Keywords, isBlank) {
			return invalidRules("persona %q contains an empty keyword", id)
		}
	}
	for _, p := range r.Personas {
		if !slices.Contains(KnownPersonas, p.ID) {
			return invalidRules("unknown persona id %q", p.ID)
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func invalidRules(format string, args ...any) error {
	return errors.NewConfigError(errors.ErrCodeInvalidRules, fmt.Sprintf(format, args...), nil)
}
