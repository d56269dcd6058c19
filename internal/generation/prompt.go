package generation

import (
	"encoding/json"
	"strings"
)

// SystemPrompt is the fixed instruction sent with every generation request.
const SystemPrompt = `You are a flashcard generation assistant. Generate clear, concise flashcards from the provided text.

INSTRUCTIONS:
- Create 5-15 flashcards based on the most important concepts
- Each flashcard should have a 'front' (question) and 'back' (answer)
- Questions should be specific and clear
- Answers should be concise but complete
- Focus on key concepts, definitions, processes, and relationships
- Return ONLY valid JSON in the exact format below, with no additional text or explanations

REQUIRED JSON FORMAT:
{
  "flashcards": [
    {
      "front": "Question text here",
      "back": "Answer text here"
    }
  ]
}`

// UserPrompt wraps the source text in the user turn of the conversation.
func UserPrompt(sourceText string) string {
	return "Generate flashcards from this text:\n\n" + sourceText
}

type proposalsEnvelope struct {
	Flashcards []Proposal `json:"flashcards"`
}

// ParseProposals decodes a model reply of the form {"flashcards":[...]}.
// A surrounding markdown code fence is tolerated. Pairs with an empty side
// are dropped; a reply left with no proposals is malformed.
func ParseProposals(provider, content string) ([]Proposal, error) {
	content = stripCodeFence(strings.TrimSpace(content))
	if content == "" {
		return nil, Malformed(provider, "empty message content", nil)
	}

	var envelope proposalsEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, Malformed(provider, "failed to parse flashcards JSON", err)
	}

	proposals := make([]Proposal, 0, len(envelope.Flashcards))
	for _, p := range envelope.Flashcards {
		front := strings.TrimSpace(p.Front)
		back := strings.TrimSpace(p.Back)
		if front == "" || back == "" {
			continue
		}
		proposals = append(proposals, Proposal{Front: front, Back: back})
	}

	if len(proposals) == 0 {
		return nil, Malformed(provider, "reply did not contain any flashcards", nil)
	}
	return proposals, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
