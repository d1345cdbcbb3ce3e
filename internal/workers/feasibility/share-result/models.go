package shareresult

import "feasibility-workers/internal/share"

type Input struct {
	BusinessName string `json:"businessName"`
	PageURL      string `json:"pageUrl"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type Output struct {
	Links     share.Links `json:"links"`
	EmailSent bool        `json:"emailSent"`
	SMSSent   bool        `json:"smsSent"`
}
