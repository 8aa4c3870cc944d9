package chat

import (
	"strings"

	"github.com/cogniwise/cogniwise/internal/knowledge"
)

const persona = `You are CogniWise AI, a helpful medical assistant for cognitive assessments.
Use the knowledge base context below to answer the user's questions.`

const refusal = "I am CogniWise AI, specialized in cognitive health. I cannot answer general knowledge or political questions. Please ask me about brain health, ADHD, dementia, or cognitive assessments."

const instructions = `IMPORTANT INSTRUCTIONS:
1. Only answer questions about cognitive and brain health, ADHD, autism, dementia and the CogniWise assessments. Do not answer general knowledge, politics, sports, entertainment or current events.
2. When a question is outside that domain, reply exactly: "` + refusal + `"
3. Reply in the language the user wrote in, including Kannada.
4. When the user shares a medical document, explain or translate it accurately in the requested language.
5. Keep replies concise, empathetic and professional. Screening results are not a diagnosis.`

// buildSystemPrompt renders the persona, knowledge base context and rules.
// condition and ageGroup narrow the context when known.
func buildSystemPrompt(condition, ageGroup string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nKNOWLEDGE BASE CONTEXT:\n")
	b.WriteString(knowledge.Context(condition, ageGroup))
	b.WriteString("\n\n")
	b.WriteString(instructions)
	return b.String()
}
