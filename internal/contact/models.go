// Package contact holds the contact form submission model. Submissions are
// created by the public endpoint and read-only thereafter.
package contact

import "time"

type Submission struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Subject string `json:"subject"`
	// Message is optional on the form but always stored, defaulting to "",
	// so readers never handle a missing field.
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
