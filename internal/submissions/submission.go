package submissions

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a submission does not exist.
var ErrNotFound = errors.New("submissions: not found")

// Submission is a validated form submission.
type Submission struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Email     string            `json:"email"`
	Name      string            `json:"name,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Locale    string            `json:"locale"`
	UserID    string            `json:"userId,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}
