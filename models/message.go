package models

// Message is a plain confirmation body.
type Message struct {
	Message string `json:"message"`
}
