package qa

import "strings"

// GroundingPrompt embeds the full document text verbatim followed by the
// verbatim question. The model is told to answer only from the text and to
// admit when the text lacks the answer. No truncation or chunking: an
// oversized document fails at the model's input ceiling instead of being
// silently shortened.
func GroundingPrompt(documentText, question string) string {
	var b strings.Builder
	b.Grow(len(documentText) + len(question) + 256)
	b.WriteString("You are a helpful tutor. Answer ONLY using the following book content. ")
	b.WriteString("If the answer isn't present, say you don't know.\n\n")
	b.WriteString("BOOK CONTENT:\n")
	b.WriteString(documentText)
	b.WriteString("\n\nQUESTION:\n")
	b.WriteString(question)
	b.WriteString("\n\nANSWER:")
	return b.String()
}
