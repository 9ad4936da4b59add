package llm

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/askdb/askdb/common/logger"
)

const tokenEncoding = "cl100k_base"

// TruncateToTokens cuts text down to at most budget tokens so a large result
// set cannot blow the model's context window. A budget of zero disables
// trimming. If the encoder cannot be loaded the text passes through
// untouched; losing the trim is better than losing the answer.
func TruncateToTokens(text string, budget int) string {
	if budget <= 0 || text == "" {
		return text
	}
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		logger.Warnf("llm: token encoding unavailable, skipping context trim: %v", err)
		return text
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	trimmed := enc.Decode(tokens[:budget])
	logger.Infof("llm: trimmed context from %d to %d tokens", len(tokens), budget)
	return trimmed
}
