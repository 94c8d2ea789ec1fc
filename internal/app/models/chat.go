package models

import "time"

// ChatThread represents a two-party conversation based on the 'chat_threads'
// table. ParticipantLow and ParticipantHigh hold the canonical pair: the two
// user ids sorted lexicographically, so lookups are independent of which side
// initiated the thread. LastMessageTs is epoch milliseconds, 0 meaning no
// messages yet.
type ChatThread struct {
	ID              string                     `json:"id" db:"id"`
	ParticipantLow  string                     `json:"-" db:"participant_low"`
	ParticipantHigh string                     `json:"-" db:"participant_high"`
	ParticipantInfo map[string]ParticipantInfo `json:"participantInfo" db:"participant_info"`
	LastMessageText string                     `json:"lastMessageText" db:"last_message_text"`
	LastMessageTs   int64                      `json:"lastMessageTimestamp" db:"last_message_ts"`
	CreatedAt       time.Time                  `json:"createdAt" db:"created_at"`
}

// Participants returns the canonical pair in order.
func (t *ChatThread) Participants() [2]string {
	return [2]string{t.ParticipantLow, t.ParticipantHigh}
}

// HasParticipant reports whether userID is one of the two thread members.
func (t *ChatThread) HasParticipant(userID string) bool {
	return t.ParticipantLow == userID || t.ParticipantHigh == userID
}

// OtherParticipant returns the member that is not userID. Falls back to the
// empty string when userID is not a member.
func (t *ChatThread) OtherParticipant(userID string) string {
	switch userID {
	case t.ParticipantLow:
		return t.ParticipantHigh
	case t.ParticipantHigh:
		return t.ParticipantLow
	}
	return ""
}

// CanonicalPair sorts two user ids lexicographically into the (low, high)
// order used as the thread identity key.
func CanonicalPair(a, b string) (low, high string) {
	if a <= b {
		return a, b
	}
	return b, a
}

// ChatMessage represents a single message in a thread, based on the
// 'chat_messages' table. Immutable once created; ordered by Ts ascending.
type ChatMessage struct {
	ID       string `json:"id" db:"id"`
	ThreadID string `json:"threadId" db:"thread_id"`
	SenderID string `json:"senderId" db:"sender_id"`
	Body     string `json:"text" db:"body"`
	Ts       int64  `json:"timestamp" db:"ts"`
}
