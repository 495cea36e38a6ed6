package internal

import (
	"encoding/json"
	"time"
)

// ChatMessage is the json envelope exchanged on the chat socket in both
// directions. Server-authored messages carry the "System" user.
type ChatMessage struct {
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

const systemUser = "System"

func systemMessage(text string) ChatMessage {
	return ChatMessage{
		User:      systemUser,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (m ChatMessage) encode() []byte {
	// a struct of plain strings cannot fail to marshal
	payload, _ := json.Marshal(m)
	return payload
}
