package models

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message for TUI display
type Message struct {
	Role    Role
	Content string
}

// Label returns the transcript label for the message author.
func (r Role) Label() string {
	if r == RoleUser {
		return "🧑 You"
	}
	return "🤖 Assistant"
}

// ResumeFile is a résumé the user selected for upload.
type ResumeFile struct {
	Path     string
	Name     string
	Size     int64
	MIMEType string
}
