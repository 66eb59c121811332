package types

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message represents a single message in the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the payload returned by POST /chat.
// Sources is reserved for citation support and is always empty for now.
type ChatResponse struct {
	Response  string   `json:"response"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
