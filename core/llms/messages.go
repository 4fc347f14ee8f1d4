package llms

// Role describes who a conversation message is from.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn's content in a conversation.
type Message struct {
	Role    Role
	Content string
}
