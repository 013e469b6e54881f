package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/lexicon/ai"
)

const definitionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "senses": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "part_of_speech": {
            "type": "string"
          },
          "definition": {
            "type": "string",
            "minLength": 1
          },
          "example": {
            "type": "string"
          }
        },
        "required": ["part_of_speech", "definition"],
        "additionalProperties": false
      }
    }
  },
  "required": ["senses"],
  "additionalProperties": false
}`

const definitionPromptTemplate = `You are a concise English dictionary. Define the term given by the user and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Return at most %d senses, most common meaning first.
- part_of_speech must be exactly one of: %s.
- Use "idiom" or "phrase" for multi-word expressions.
- Each definition is a single sentence of at most 25 words and must not repeat the term itself.
- example is optional; when given it is one short sentence that uses the term.
- If the term is not a real word or expression, return "senses": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "serendipity"
Output:
{
  "senses": [
    {"part_of_speech":"noun","definition":"The occurrence of fortunate events by chance.","example":"Finding the book was pure serendipity."}
  ]
}

Example:
Input: "break a leg"
Output:
{
  "senses": [
    {"part_of_speech":"idiom","definition":"A way of wishing a performer good luck.","example":"Break a leg tonight!"}
  ]
}`

// buildSystemPrompt renders the dictionary prompt for a sense limit.
func buildSystemPrompt(maxSenses int) string {
	return fmt.Sprintf(definitionPromptTemplate,
		definitionResponseSchema,
		maxSenses,
		strings.Join(ai.PartsOfSpeech, ", "))
}
