package logic

import (
	"fmt"
	"strings"

	"github.com/abhinay-x/studymate-sub001/models"
)

const contextEllipsis = "\n...\n"

// BuildContext concatenates chunk contents in retrieval order
func BuildContext(chunks []models.DocumentChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}

// TruncateContext fits the context into the character budget by keeping a
// prefix and a suffix of roughly equal size and eliding the middle, so both
// the earliest and the most relevant context survive. The result never
// exceeds the budget.
func TruncateContext(contextText string, budget int) string {
	if budget <= 0 || len(contextText) <= budget {
		return contextText
	}
	half := (budget - len(contextEllipsis)) / 2
	if half <= 0 {
		return contextText[:budget]
	}
	return contextText[:half] + contextEllipsis + contextText[len(contextText)-half:]
}

// ComposePrompt embeds the retrieved context and the question into the
// instruction template. With no context it degrades to an unconditioned
// prompt. Pure function: identical inputs always yield an identical prompt.
func ComposePrompt(chunks []models.DocumentChunk, question string, maxContextChars int) string {
	contextText := BuildContext(chunks)
	if contextText == "" {
		return fmt.Sprintf("Question: %s\n\nAnswer: ", question)
	}
	contextText = TruncateContext(contextText, maxContextChars)
	return fmt.Sprintf("Context: %s\n\nQuestion: %s\n\nAnswer: Based on the provided context, ", contextText, question)
}
