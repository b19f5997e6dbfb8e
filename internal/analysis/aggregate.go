package analysis

// Band is the qualitative label for an overall score
type Band string

const (
	BandExcellent        Band = "excellent"
	BandGood             Band = "good"
	BandNeedsImprovement Band = "needsImprovement"
)

// Band thresholds, inclusive
const (
	excellentThreshold = 90
	goodThreshold      = 75
)

// categoryWeights are expressed in percent so the weighted sum stays exact
var categoryWeights = map[Category]int{
	CategoryKeywords:   30,
	CategoryFormatting: 25,
	CategorySections:   25,
	CategoryLength:     20,
}

// OverallScore is the weighted combination of the category scores
type OverallScore struct {
	Score int  `json:"score"`
	Band  Band `json:"band"`
}

// Aggregate combines category scores into an overall score and band
// Categories without a weight contribute nothing
func Aggregate(scores []CategoryScore) OverallScore {
	sum := 0
	for _, s := range scores {
		sum += categoryWeights[s.Category] * s.Score
	}
	// sum is in hundredths; +50 rounds half up for non-negative totals
	overall := (sum + 50) / 100
	return OverallScore{Score: overall, Band: BandFor(overall)}
}

// BandFor maps an overall score to its band
func BandFor(score int) Band {
	switch {
	case score >= excellentThreshold:
		return BandExcellent
	case score >= goodThreshold:
		return BandGood
	default:
		return BandNeedsImprovement
	}
}
