package query

import (
	"fmt"
	"strings"
)

const groundingPromptTemplate = `You are a helpful assistant.
Use the following context to answer the question.

Context:
%s

Question:
%s
`

const selfQueryPromptTemplate = `You are a helpful assistant. Given a user query, extract the following:
- A search query
- Filters like page number or keywords

Return only valid JSON. Do NOT explain. Do NOT add any text before or after the JSON.

Format:
{
"query": "...",
"filters": {
    "page": ...
}
}

User Query: "%s"
`

// buildGroundingPrompt restricts the model to answering only from the
// retrieved context.
func buildGroundingPrompt(context, question string) string {
	return fmt.Sprintf(groundingPromptTemplate, context, question)
}

func buildSelfQueryPrompt(question string) string {
	return fmt.Sprintf(selfQueryPromptTemplate, question)
}

// joinTexts concatenates retrieved chunk texts with blank-line separators,
// preserving result order.
func joinTexts(texts []string) string {
	return strings.Join(texts, "\n\n")
}
