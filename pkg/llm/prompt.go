// Package llm holds the provider-neutral part of the model-backed
// collaborators: prompt construction and coercion of model replies.
//
// Provider adapters (pkg/adapters/openai, pkg/adapters/gemini) only implement
// Completer; Generator and Parser turn any Completer into a
// ports.QuestionGenerator and a ports.AnswerParser.
package llm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/aiforms/pkg/domain"
)

// ParseSystemPrompt instructs the model to normalize free text into one value.
const ParseSystemPrompt = `You are an expert at parsing user input into structured data types.

Your job is to convert natural language user responses into the exact format needed for a specific field type.

Guidelines:
- Parse user input to match the exact target type
- Handle common variations and synonyms
- For lists, accept comma-separated, newline-separated, or natural language formats, and answer with comma-separated items
- For booleans, handle yes/no, true/false, 1/0, and variations, and answer with true or false
- For numbers, extract numeric values from text
- Return just the parsed value, no explanation
- If parsing is impossible, return an error message starting with "ERROR:"

Be flexible with input formats but strict with output format.`

// QuestionSystemPrompt instructs the model to phrase a single question.
const QuestionSystemPrompt = `You write the next question of a conversational form.

Guidelines:
- Ask for exactly one piece of information
- Keep it short, friendly and clear
- Use what is already known about the user when it makes the question more natural
- Mention examples or format hints when they are given
- Reply with the question only, no preamble`

// TypeDescription names a type tag the way the parse prompt presents it.
func TypeDescription(t domain.TypeTag) string {
	switch t {
	case domain.TypeInteger:
		return "integer"
	case domain.TypeFloat:
		return "decimal number"
	case domain.TypeBoolean:
		return "boolean (true/false)"
	case domain.TypeList:
		return "list of string"
	case domain.TypeOther:
		return "any value"
	default:
		return "string"
	}
}

// ParsePrompt builds the user message asking the model to parse raw for field.
func ParsePrompt(raw string, field domain.FieldSpec) string {
	var b strings.Builder
	b.WriteString("Parse this user input into the required format:\n\n")
	fmt.Fprintf(&b, "User input: %q\n", raw)
	fmt.Fprintf(&b, "Target type: %s\n", TypeDescription(field.Type))
	fmt.Fprintf(&b, "Field name: %s\n", field.Name)
	fmt.Fprintf(&b, "Description: %s\n", field.Description)
	if ex := field.TopExamples(); len(ex) > 0 {
		fmt.Fprintf(&b, "Examples of valid values: %s\n", strings.Join(ex, ", "))
	}
	if field.ValidationHint != "" {
		fmt.Fprintf(&b, "Validation hint: %s\n", field.ValidationHint)
	}
	b.WriteString("\nParse the input to match the target type exactly. Return just the parsed value.\n")
	b.WriteString(`If you cannot parse it, return an error message starting with "ERROR:".`)
	b.WriteString("\n")
	return b.String()
}

// QuestionPrompt builds the user message asking the model to phrase the
// question for field, given the answers and context known so far.
func QuestionPrompt(field domain.FieldSpec, data map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Field name: %s\n", field.Name)
	fmt.Fprintf(&b, "Expected type: %s\n", TypeDescription(field.Type))
	if field.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", field.Description)
	}
	if field.CustomQuestion != "" {
		fmt.Fprintf(&b, "Preferred wording: %s\n", field.CustomQuestion)
	}
	if ex := field.TopExamples(); len(ex) > 0 {
		fmt.Fprintf(&b, "Examples: %s\n", strings.Join(ex, ", "))
	}
	if field.ValidationHint != "" {
		fmt.Fprintf(&b, "Format hint: %s\n", field.ValidationHint)
	}

	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		b.WriteString("\nKnown so far:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", k, data[k])
		}
	}
	return b.String()
}
