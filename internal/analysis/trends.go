package analysis

// TrendEntry is one in-demand skill with its market signal
type TrendEntry struct {
	Skill        string `yaml:"skill" json:"skill"`
	TrendPercent int    `yaml:"trendPercent" json:"trendPercent"`
	SalaryImpact int    `yaml:"salaryImpact" json:"salaryImpact"`
	Rationale    string `yaml:"rationale" json:"rationale"`
}

// TrendingSuggestionLimit is how many unmatched trends are surfaced per analysis
const TrendingSuggestionLimit = 2

// DefaultTrends returns the built-in trend table. Order matters: selection walks it top down
func DefaultTrends() []TrendEntry {
	return []TrendEntry{
		{Skill: "Generative AI", TrendPercent: 52, SalaryImpact: 20000, Rationale: "LLM integration work is the fastest growing request in engineering postings"},
		{Skill: "Machine Learning", TrendPercent: 45, SalaryImpact: 18000, Rationale: "Applied ML experience is requested well beyond dedicated data science roles"},
		{Skill: "Kubernetes", TrendPercent: 38, SalaryImpact: 15000, Rationale: "Container orchestration is now a baseline expectation for backend roles"},
		{Skill: "Terraform", TrendPercent: 34, SalaryImpact: 12000, Rationale: "Infrastructure as code appears in most platform and DevOps listings"},
		{Skill: "Rust", TrendPercent: 31, SalaryImpact: 14000, Rationale: "Systems teams are adopting Rust for performance-critical services"},
		{Skill: "GraphQL", TrendPercent: 27, SalaryImpact: 9000, Rationale: "API teams increasingly expose GraphQL alongside REST"},
		{Skill: "Cybersecurity", TrendPercent: 25, SalaryImpact: 11000, Rationale: "Secure-by-default engineering is a growing hiring criterion"},
		{Skill: "Data Engineering", TrendPercent: 22, SalaryImpact: 10000, Rationale: "Pipeline and warehouse skills are in demand as analytics teams grow"},
	}
}

// TrendOverlay selects in-demand skills a resume does not mention yet
type TrendOverlay struct {
	entries []TrendEntry
	matcher KeywordMatcher
}

// NewTrendOverlay creates an overlay over entries using matcher for presence checks
func NewTrendOverlay(entries []TrendEntry, matcher KeywordMatcher) *TrendOverlay {
	return &TrendOverlay{entries: entries, matcher: matcher}
}

// Unmatched returns up to limit entries whose skill is absent from doc, in table order
func (o *TrendOverlay) Unmatched(doc Document, limit int) []TrendEntry {
	out := make([]TrendEntry, 0, limit)
	for _, entry := range o.entries {
		if len(out) >= limit {
			break
		}
		if !o.matcher.Contains(doc, entry.Skill) {
			out = append(out, entry)
		}
	}
	return out
}
