package analysis

import "fmt"

const biasRubric = `Score political bias on a 0-100 scale:
  0-20  Highly Liberal
 21-40  Liberal
 41-60  Neutral/Centrist
 61-80  Conservative
 81-100 Highly Conservative`

const biasSystemPrompt = `You are a media bias analyst. You judge political lean from framing, word choice, story selection and sourcing, not from the topic itself. Reply with JSON only, no prose, no markdown fences.`

func contentAnalysisPrompt(title, content string) string {
	return fmt.Sprintf(`Analyze the political bias of this news article.

%s

Title: %s

Article text:
%s

Reply with exactly this JSON shape:
{"bias_score": <int 0-100>, "bias_label": "<bucket label>", "confidence": <float 0-1>, "reasoning": "<one or two sentences>", "key_indicators": ["<phrase>", ...]}`,
		biasRubric, title, content)
}

func sourceReputationPrompt(source string) string {
	return fmt.Sprintf(`Estimate the overall political lean of the news outlet %q across its reporting.

%s

Reply with exactly this JSON shape:
{"bias_score": <int 0-100>, "confidence": <float 0-1>, "reasoning": "<one sentence>"}`,
		source, biasRubric)
}

func sourceAdjustedPrompt(title, content, source string, sourceScore int) string {
	return fmt.Sprintf(`The outlet %q has an estimated overall bias score of %d on the scale below. Starting from that estimate, reconsider this specific article and adjust the score if its framing differs from the outlet's usual lean.

%s

Title: %s

Article text:
%s

Reply with exactly this JSON shape:
{"bias_score": <int 0-100>, "bias_label": "<bucket label>", "confidence": <float 0-1>, "reasoning": "<one or two sentences>", "key_indicators": ["<phrase>", ...]}`,
		source, sourceScore, biasRubric, title, content)
}

const summarySystemPrompt = `You summarize news articles in neutral language. Do not editorialize. Reply with JSON only, no prose, no markdown fences.`

func summaryPrompt(title, content string) string {
	return fmt.Sprintf(`Summarize this article in at most 150 words, then list 3-5 key points.

Title: %s

Article text:
%s

Reply with exactly this JSON shape:
{"summary": "<neutral summary, max 150 words>", "key_points": ["<point>", ...]}`,
		title, content)
}
