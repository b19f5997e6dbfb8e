package analysis

// Taxonomy holds the term lists the keyword scorer counts against
type Taxonomy struct {
	Technical   []string `yaml:"technical" json:"technical"`
	ActionVerbs []string `yaml:"actionVerbs" json:"actionVerbs"`
	Metrics     []string `yaml:"metrics" json:"metrics"`
	SoftSkills  []string `yaml:"softSkills" json:"softSkills"`
}

// DefaultTaxonomy returns the built-in term lists
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Technical: []string{
			"javascript", "typescript", "python", "java", "golang", "react",
			"node.js", "sql", "aws", "docker", "kubernetes", "graphql",
			"postgresql", "mongodb", "terraform", "ci/cd",
		},
		ActionVerbs: []string{
			"developed", "implemented", "designed", "architected", "optimized",
			"managed", "created", "built", "launched", "delivered",
			"automated", "spearheaded", "mentored", "streamlined", "led",
		},
		Metrics: []string{
			"%", "$", "increased", "decreased", "reduced", "improved",
			"million", "thousand", "revenue", "users", "saved",
		},
		SoftSkills: []string{
			"leadership", "communication", "teamwork", "collaboration",
			"problem-solving", "mentoring", "adaptability", "analytical",
		},
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (t Taxonomy) clone() Taxonomy {
	return Taxonomy{
		Technical:   cloneStrings(t.Technical),
		ActionVerbs: cloneStrings(t.ActionVerbs),
		Metrics:     cloneStrings(t.Metrics),
		SoftSkills:  cloneStrings(t.SoftSkills),
	}
}
