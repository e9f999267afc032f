package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func getEncoding() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	return encoding
}

// TruncateTokens trims text to at most maxTokens tokens. If the encoder
// is unavailable it falls back to an approximate 4-chars-per-token cut.
func TruncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}

	enc := getEncoding()
	if enc == nil {
		runes := []rune(text)
		max := maxTokens * 4
		if len(runes) <= max {
			return text
		}
		return string(runes[:max])
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}
