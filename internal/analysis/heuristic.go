package analysis

import (
	"fmt"
	"strings"
)

// Keyword lists for the last-resort classifier. Curated, not learned;
// phrase choice matters more than length.
var liberalKeywords = []string{
	"progressive",
	"climate crisis",
	"climate justice",
	"social justice",
	"income inequality",
	"gun control",
	"gun violence epidemic",
	"reproductive rights",
	"universal healthcare",
	"systemic racism",
	"marginalized communities",
	"living wage",
	"workers' rights",
	"voting rights",
	"wealth tax",
}

var conservativeKeywords = []string{
	"traditional values",
	"free market",
	"second amendment",
	"border security",
	"illegal immigration",
	"law and order",
	"limited government",
	"pro-life",
	"religious freedom",
	"fiscal responsibility",
	"radical left",
	"woke agenda",
	"government overreach",
	"family values",
	"tax relief",
}

var neutralKeywords = []string{
	"according to",
	"officials said",
	"data shows",
	"experts say",
	"report finds",
	"both sides",
	"bipartisan",
}

// Source hostname fragments with a known editorial lean. Strong matches
// shift the score by 25 points, lean matches by 10.
var strongLiberalSources = []string{"motherjones", "thenation", "huffpost", "alternet", "dailykos"}
var leanLiberalSources = []string{"cnn", "msnbc", "nytimes", "washingtonpost", "theguardian", "vox", "slate", "theatlantic"}
var strongConservativeSources = []string{"breitbart", "dailywire", "dailycaller", "newsmax", "oann", "theblaze"}
var leanConservativeSources = []string{"foxnews", "nypost", "washingtontimes", "washingtonexaminer", "nationalreview"}

// Heuristic scores an article from keyword counts and source lean alone.
// Pure function of its inputs: identical input always yields identical
// output. When nothing political is detected the result is the neutral
// bucket at low confidence.
func Heuristic(title, content, source string) *BiasAnalysis {
	titleLower := strings.ToLower(title)
	contentLower := strings.ToLower(content)

	var indicators []string

	// Title hits are weighted double: headlines carry the framing.
	countHits := func(keywords []string) int {
		hits := 0
		for _, kw := range keywords {
			t := strings.Count(titleLower, kw)
			c := strings.Count(contentLower, kw)
			if t+c > 0 && len(indicators) < 6 {
				indicators = append(indicators, kw)
			}
			hits += 2*t + c
		}
		return hits
	}

	liberal := countHits(liberalKeywords)
	conservative := countHits(conservativeKeywords)
	neutral := countHits(neutralKeywords)

	modifier, sourceMatched := sourceModifier(source)

	if liberal+conservative == 0 && !sourceMatched {
		return (&BiasAnalysis{
			BiasScore:      50,
			Confidence:     0.2,
			Reasoning:      "No political keywords or known source lean detected; defaulting to centrist at low confidence.",
			KeyIndicators:  nil,
			AnalysisMethod: MethodKeywordHeuristic,
		}).normalize()
	}

	score := 50
	if liberal+conservative > 0 {
		// Relative dominance of one vocabulary over the other, scaled to
		// at most ±30 around center.
		score += 30 * (conservative - liberal) / (conservative + liberal)
	}
	score += modifier

	confidence := 0.3 + 0.04*float64(liberal+conservative)
	if sourceMatched {
		confidence += 0.1
	}
	// Heavy neutral language keeps keyword evidence from overclaiming.
	if neutral > liberal+conservative {
		confidence -= 0.1
	}
	if confidence > 0.7 {
		confidence = 0.7
	}

	if sourceMatched && len(indicators) < 6 {
		indicators = append(indicators, fmt.Sprintf("source: %s", source))
	}

	return (&BiasAnalysis{
		BiasScore:  score,
		Confidence: confidence,
		Reasoning: fmt.Sprintf(
			"Keyword analysis found %d liberal, %d conservative and %d neutral markers (title weighted double); source modifier %+d.",
			liberal, conservative, neutral, modifier),
		KeyIndicators:  indicators,
		AnalysisMethod: MethodKeywordHeuristic,
	}).normalize()
}

// sourceModifier returns the score shift for a known source hostname
func sourceModifier(source string) (int, bool) {
	s := strings.ToLower(source)
	if s == "" {
		return 0, false
	}

	contains := func(list []string) bool {
		for _, frag := range list {
			if strings.Contains(s, frag) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(strongLiberalSources):
		return -25, true
	case contains(strongConservativeSources):
		return 25, true
	case contains(leanLiberalSources):
		return -10, true
	case contains(leanConservativeSources):
		return 10, true
	}
	return 0, false
}
