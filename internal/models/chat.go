package models

// Chat roles
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of the assistant conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
