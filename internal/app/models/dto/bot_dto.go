package dto

// BotAskRequest forwards a free-text prompt to the assistant
type BotAskRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// BotExchangeResponse is one prompt/response pair in the assistant history
type BotExchangeResponse struct {
	ID        string `json:"id"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	Timestamp int64  `json:"timestamp"`
}
