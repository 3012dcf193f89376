package chat

// StartChatRequest represents the input for opening a chat about an animal.
// Animal is the animal's numeric id or slug.
type StartChatRequest struct {
	Animal string `json:"animal" binding:"required"`
}

// SendMessageRequest represents the input for sending a chat message.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}
