// internal/translate/translate.go
package translate

import (
	"context"

	"github.com/DM20911/Shodan-AI/internal/core/logger"
)

// Mode selects how a question becomes a Shodan query.
type Mode int

const (
	ModeHeuristic Mode = iota
	ModeAI
)

func (m Mode) String() string {
	if m == ModeAI {
		return "ai"
	}
	return "heuristic"
}

// SelectMode decides the translation path: AI only when an OpenAI key is
// available and the user did not opt out.
func SelectMode(openAIKey string, noAI bool) Mode {
	if openAIKey != "" && !noAI {
		return ModeAI
	}
	return ModeHeuristic
}

// Translation is the outcome of translating one question.
type Translation struct {
	Query  string `json:"query"`
	Source string `json:"source"`
}

// Translator turns natural-language questions into Shodan queries, preferring
// the AI path when configured and degrading to heuristic rules on any failure.
type Translator struct {
	ai   *OpenAIClient
	noAI bool
}

// NewTranslator builds a Translator. An empty openAIKey disables the AI path
// entirely; no completion call is ever attempted without a key.
func NewTranslator(openAIKey string, noAI bool) *Translator {
	t := &Translator{noAI: noAI}
	if openAIKey != "" {
		t.ai = NewOpenAIClient(openAIKey)
	}
	return t
}

// AIClient exposes the underlying completion client so the CLI can point it
// at a different endpoint. Nil when the AI path is disabled.
func (t *Translator) AIClient() *OpenAIClient {
	return t.ai
}

// Translate produces the final query. The AI path failing is not an error:
// the heuristic translator always yields a usable query.
func (t *Translator) Translate(ctx context.Context, question string) Translation {
	log := logger.GetLogger()

	key := ""
	if t.ai != nil {
		key = t.ai.APIKey
	}
	if SelectMode(key, t.noAI) == ModeAI {
		query, err := t.ai.TranslateQuery(ctx, question)
		if err == nil {
			log.Debugf("AI translation succeeded (model %s)", t.ai.Model)
			return Translation{Query: query, Source: "OpenAI (" + t.ai.Model + ")"}
		}
		log.Warnf("AI translation failed, falling back to heuristic rules: %v", err)
	}

	return Translation{
		Query:  TranslateHeuristic(question),
		Source: "heuristic rules (no AI)",
	}
}
