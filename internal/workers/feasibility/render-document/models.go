package renderdocument

import "encoding/json"

type Input struct {
	AnswerSet    json.RawMessage `json:"answerSet"`
	DocumentType string          `json:"documentType"`
}

type Output struct {
	DocumentID       string `json:"documentId"`
	DocumentType     string `json:"documentType"`
	Filename         string `json:"filename"`
	PageCount        int    `json:"pageCount"`
	SizeBytes        int    `json:"sizeBytes"`
	FeasibilityScore int    `json:"feasibilityScore"`
	ExpiresAt        string `json:"expiresAt"`
}
