package savesession

import "encoding/json"

type Input struct {
	SessionID       string          `json:"sessionId"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirmPassword"`
	AnswerSet       json.RawMessage `json:"answerSet"`
}

type Output struct {
	Saved     bool   `json:"saved"`
	SavedAt   string `json:"savedAt"`
	ExpiresAt string `json:"expiresAt"`
}
