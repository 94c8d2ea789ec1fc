package models

// BotExchange represents one prompt/response pair with the chatbot assistant,
// based on the 'bot_messages' table. History replays in ascending Ts order.
type BotExchange struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"userId" db:"user_id"`
	Prompt   string `json:"prompt" db:"prompt"`
	Response string `json:"response" db:"response"`
	Ts       int64  `json:"timestamp" db:"ts"`
}
