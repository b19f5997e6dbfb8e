package rules

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"

	"gopkg.in/yaml.v3"
)

// rulesFile is the YAML override document. Absent lists keep the built-in values
type rulesFile struct {
	Taxonomy *taxonomyOverride          `yaml:"taxonomy"`
	Trends   []analysis.TrendEntry      `yaml:"trends"`
	Personas []analysis.PersonaTemplate `yaml:"personas"`
}

type taxonomyOverride struct {
	Technical   []string `yaml:"technical"`
	ActionVerbs []string `yaml:"actionVerbs"`
	Metrics     []string `yaml:"metrics"`
	SoftSkills  []string `yaml:"softSkills"`
}

// LoadFile reads a YAML rules file and overlays it on base
func LoadFile(path string, base analysis.Rules) (analysis.Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrCodeRulesFileFailed
		if os.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return analysis.Rules{}, errors.NewIOError(code, fmt.Sprintf("failed to open rules file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, base)
}

// Decode parses a rules document and overlays it on base. Unknown keys are rejected,
// so category weights cannot be overridden
func Decode(r io.Reader, base analysis.Rules) (analysis.Rules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return analysis.Rules{}, errors.NewIOError(errors.ErrCodeRulesFileFailed, "failed to read rules file", err)
	}

	var doc rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return analysis.Rules{}, errors.NewConfigError(errors.ErrCodeInvalidRules, "failed to parse rules file", err)
	}

	out := overlay(base, doc)
	if err := out.Validate(); err != nil {
		return analysis.Rules{}, err
	}
	return out, nil
}

// overlay applies doc to a copy of base
func overlay(base analysis.Rules, doc rulesFile) analysis.Rules {
	out := base.Clone()

	if t := doc.Taxonomy; t != nil {
		replaceIfSet(&out.Taxonomy.Technical, t.Technical)
		replaceIfSet(&out.Taxonomy.ActionVerbs, t.ActionVerbs)
		replaceIfSet(&out.Taxonomy.Metrics, t.Metrics)
		replaceIfSet(&out.Taxonomy.SoftSkills, t.SoftSkills)
	}
	if doc.Trends != nil {
		out.Trends = append([]analysis.TrendEntry(nil), doc.Trends...)
	}
	for _, p := range doc.Personas {
		out.Personas = mergePersona(out.Personas, p)
	}
	return out
}

func replaceIfSet(dst *[]string, src []string) {
	if src != nil {
		*dst = append([]string(nil), src...)
	}
}

// mergePersona overrides the fields p sets on the template with the same id,
// or appends p when no template has that id
func mergePersona(list []analysis.PersonaTemplate, p analysis.PersonaTemplate) []analysis.PersonaTemplate {
	for i := range list {
		if list[i].ID != p.ID {
			continue
		}
		cur := &list[i]
		if p.DisplayName != "" {
			cur.DisplayName = p.DisplayName
		}
		replaceIfSet(&cur.Keywords, p.Keywords)
		replaceIfSet(&cur.Phrases, p.Phrases)
		replaceIfSet(&cur.Metrics, p.Metrics)
		if p.SummaryTemplate != "" {
			cur.SummaryTemplate = p.SummaryTemplate
		}
		return list
	}
	return append(list, p)
}
