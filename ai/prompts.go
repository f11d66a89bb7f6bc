package ai

import "fmt"

// GroundedSystemPrompt constrains generation to the retrieved context.
// The model must not fall back to its own knowledge and must say when
// the context is insufficient rather than fabricating.
const GroundedSystemPrompt = `You are an assistant that answers questions using only the context supplied with each question.

RULES:
1. Answer only from the supplied context. Do not use outside knowledge.
2. If the context does not contain the information needed, reply exactly: "The provided documents do not contain enough information to answer this question."
3. Be concise and precise.`

// BuildUserPrompt formats the user turn: the context block (when present)
// followed by the question.
func BuildUserPrompt(query, contextBlock string) string {
	if contextBlock == "" {
		return fmt.Sprintf("Question: %s\n", query)
	}
	return fmt.Sprintf("Context from documents:\n\n%s\n\nQuestion: %s\n", contextBlock, query)
}
