package waitlist

import "time"

// Entry is one waitlist signup.
type Entry struct {
	ID           string
	Email        string
	Name         string
	Position     string
	Industry     string
	LeadsPerWeek int
	CompanySize  string
	UseCase      string
	CreatedAt    time.Time
}
