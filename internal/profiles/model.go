package profiles

import (
	"strings"
	"time"
)

// TimeFormat is the string layout used for profile timestamps on disk.
const TimeFormat = "2006-01-02 15:04:05"

// Profile is a saved user record containing resume, portfolio and LinkedIn
// text plus derived skills. One profile persists as a JSON document under a
// directory named after its storage key.
type Profile struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	ResumeText    string   `json:"resume_text"`
	PortfolioText string   `json:"portfolio_text"`
	LinkedInText  string   `json:"linkedin_text"`
	Skills        []string `json:"skills"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// New constructs a profile with both timestamps set to now.
func New(firstName, lastName string) Profile {
	now := time.Now().Format(TimeFormat)
	return Profile{
		FirstName: firstName,
		LastName:  lastName,
		Skills:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName is the trimmed concatenation of first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// StorageKey derives the on-disk directory name: the full name with spaces
// replaced by underscores, or empty when the profile has no name.
func (p Profile) StorageKey() string {
	full := p.FullName()
	if full == "" {
		return ""
	}
	return strings.ReplaceAll(full, " ", "_")
}
