package domain

// ConversationMessage is one entry of the client-held chat history.
// IsProducts marks Content as a JSON-encoded FormattedProduct array rather
// than prose; it is always set explicitly so the presentation layer never
// has to guess how to render a message.
type ConversationMessage struct {
	Role        string `json:"role"`
	Content     string `json:"content"`
	IsProducts  bool   `json:"isProducts"`
	Explanation string `json:"explanation,omitempty"`
}

// ReplyMessage is the assistant message inside a chat reply envelope
type ReplyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is the unified reply envelope returned for one chat turn
type ChatReply struct {
	Message     ReplyMessage `json:"message"`
	IsProducts  bool         `json:"isProducts"`
	Explanation string       `json:"explanation,omitempty"`
}

// Message roles used across the conversation
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
