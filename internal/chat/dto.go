package chat

// ChatMessage is one prior turn supplied by the client.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=1000"`
}

// ChatRequest is the payload for the authed assistant route. An empty message
// is rejected by the service so callers get a stable error text.
type ChatRequest struct {
	Message string        `json:"message" validate:"max=1000"`
	History []ChatMessage `json:"conversationHistory" validate:"max=20,dive"`
}

// PublicChatRequest is the payload for the unauthenticated widget. History is
// uncapped at the schema; the service keeps only the most recent turns.
type PublicChatRequest struct {
	Message string        `json:"message" validate:"max=1000"`
	History []ChatMessage `json:"conversationHistory" validate:"dive"`
}

// ChatResponse carries the assistant reply. Fallback is set when the reply
// came from the static keyword responder instead of the upstream model.
type ChatResponse struct {
	Message  string `json:"message"`
	Fallback bool   `json:"fallback"`
}
