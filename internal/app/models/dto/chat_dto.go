package dto

// ResolveThreadRequest asks for the canonical thread with another user
type ResolveThreadRequest struct {
	OtherUserID string `json:"otherUserId" binding:"required"`
}

// ThreadResponse represents a chat thread as seen by one participant
type ThreadResponse struct {
	ThreadID             string          `json:"threadId"`
	OtherUserID          string          `json:"otherUserId"`
	OtherUserName        string          `json:"otherUserName"`
	OtherUserRole        string          `json:"otherUserRole"`
	LastMessageText      string          `json:"lastMessageText"`
	LastMessageTimestamp int64           `json:"lastMessageTimestamp"`
	Participants         map[string]Peer `json:"participants"`
}

// Peer is the display info for one thread participant
type Peer struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SendMessageRequest appends a message to a thread
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessageResponse represents one chat message
type MessageResponse struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
