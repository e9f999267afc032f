package analysis

// Analysis methods, in fallback order
const (
	MethodModel            = "model"
	MethodSourceReputation = "source_reputation"
	MethodKeywordHeuristic = "keyword_heuristic"
)

// Bias labels for the five score buckets
const (
	LabelHighlyLiberal      = "Highly Liberal"
	LabelLiberal            = "Liberal"
	LabelNeutral            = "Neutral/Centrist"
	LabelConservative       = "Conservative"
	LabelHighlyConservative = "Highly Conservative"
)

// BiasAnalysis is a political-bias classification of one article.
// Score 0 is maximally liberal, 100 maximally conservative.
type BiasAnalysis struct {
	BiasScore      int      `json:"bias_score"`
	BiasLabel      string   `json:"bias_label"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	KeyIndicators  []string `json:"key_indicators"`
	AnalysisMethod string   `json:"analysis_method"`
}

// Summary is a neutral summary of one article
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	WordCount int      `json:"word_count"`
	Degraded  bool     `json:"degraded,omitempty"`
}

// LabelForScore maps a score to its bucket label
func LabelForScore(score int) string {
	switch {
	case score <= 20:
		return LabelHighlyLiberal
	case score <= 40:
		return LabelLiberal
	case score <= 60:
		return LabelNeutral
	case score <= 80:
		return LabelConservative
	default:
		return LabelHighlyConservative
	}
}

// ClampScore bounds a score to [0, 100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampConfidence bounds a confidence to [0, 1]
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// normalize applies both clamps and backfills the label from the score
func (b *BiasAnalysis) normalize() *BiasAnalysis {
	b.BiasScore = ClampScore(b.BiasScore)
	b.Confidence = ClampConfidence(b.Confidence)
	if b.BiasLabel == "" {
		b.BiasLabel = LabelForScore(b.BiasScore)
	}
	return b
}
