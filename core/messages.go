package chat

import (
	"strings"

	"github.com/auphere/agent-core/core/plans"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ContentType string

const ContentTypeText ContentType = "text"

// ContentPart is one piece of a message. Only text parts participate in the
// outgoing request; other part types pass through untouched for rendering.
type ContentPart struct {
	Type ContentType
	Text string
}

// Message is one turn of the conversation as the caller holds it. Restored
// assistant turns may carry the places and plan they referenced.
type Message struct {
	Role    Role
	Content []ContentPart

	Places []plans.Place
	Plan   *plans.Plan
}

// UserMessage builds a single-part text message from the user.
func UserMessage(text string) Message {
	return Message{
		Role:    RoleUser,
		Content: []ContentPart{{Type: ContentTypeText, Text: text}},
	}
}

// AssistantMessage builds a single-part text message from the assistant.
func AssistantMessage(text string) Message {
	return Message{
		Role:    RoleAssistant,
		Content: []ContentPart{{Type: ContentTypeText, Text: text}},
	}
}

// lastUserText joins the text parts of the most recent user turn. The empty
// string means there is nothing to send to the agent.
func lastUserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != RoleUser {
			continue
		}

		parts := []string{}
		for _, part := range messages[i].Content {
			if part.Type == ContentTypeText {
				parts = append(parts, part.Text)
			}
		}
		return strings.TrimSpace(strings.Join(parts, "\n"))
	}
	return ""
}
