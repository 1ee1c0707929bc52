// internal/profile/models.go

package profile

import (
	"time"

	"github.com/lib/pq"
)

// Debate style options
const (
	DebateStyleCasual      = "casual"
	DebateStyleFormal      = "formal"
	DebateStyleCompetitive = "competitive"
)

// Communication preference options
const (
	CommunicationText  = "text"
	CommunicationVoice = "voice"
	CommunicationVideo = "video"
)

// Profile represents a user's dating/debate profile
type Profile struct {
	ID                      int64          `json:"id" db:"id"`
	UserID                  int64          `json:"user_id" db:"user_id"`
	PreferredName           string         `json:"preferredName" db:"preferred_name"`
	Age                     int            `json:"age" db:"age"`
	Gender                  string         `json:"gender" db:"gender"`
	City                    string         `json:"city" db:"city"`
	Bio                     string         `json:"bio" db:"bio"`
	Occupation              string         `json:"occupation" db:"occupation"`
	DebateStyle             string         `json:"debateStyle" db:"debate_style"`
	CommunicationPreference string         `json:"communicationPreference" db:"communication_preference"`
	ConflictQuestions       pq.StringArray `json:"conflictQuestions" db:"conflict_questions"`
	ConflictAnswers         pq.StringArray `json:"conflictAnswers" db:"conflict_answers"`
	Photo                   *string        `json:"image,omitempty" db:"photo"`
	CreatedAt               time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at" db:"updated_at"`
}

// CreateProfileRequest represents initial profile creation
// Conflict questions and answers are parallel lists: answer i responds to question i.
type CreateProfileRequest struct {
	PreferredName           string   `json:"preferredName" validate:"required,min=1,max=100"`
	Age                     int      `json:"age" validate:"required,gte=13,lte=120"`
	Gender                  string   `json:"gender" validate:"required,max=50"`
	City                    string   `json:"city" validate:"required,max=100"`
	Bio                     string   `json:"bio" validate:"omitempty,max=1000"`
	Occupation              string   `json:"occupation" validate:"omitempty,max=100"`
	DebateStyle             string   `json:"debateStyle" validate:"required,oneof=casual formal competitive"`
	CommunicationPreference string   `json:"communicationPreference" validate:"required,oneof=text voice video"`
	ConflictQuestions       []string `json:"conflictQuestions" validate:"required,min=1,max=3,dive,min=1"`
	ConflictAnswers         []string `json:"conflictAnswers" validate:"required,min=1,max=3,dive,min=1"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	PreferredName           *string  `json:"preferredName" validate:"omitempty,min=1,max=100"`
	Age                     *int     `json:"age" validate:"omitempty,gte=13,lte=120"`
	Gender                  *string  `json:"gender" validate:"omitempty,max=50"`
	City                    *string  `json:"city" validate:"omitempty,max=100"`
	Bio                     *string  `json:"bio" validate:"omitempty,max=1000"`
	Occupation              *string  `json:"occupation" validate:"omitempty,max=100"`
	DebateStyle             *string  `json:"debateStyle" validate:"omitempty,oneof=casual formal competitive"`
	CommunicationPreference *string  `json:"communicationPreference" validate:"omitempty,oneof=text voice video"`
	ConflictQuestions       []string `json:"conflictQuestions" validate:"omitempty,min=1,max=3,dive,min=1"`
	ConflictAnswers         []string `json:"conflictAnswers" validate:"omitempty,min=1,max=3,dive,min=1"`
}

// CandidateFilter narrows the candidate pool for match ranking.
// Zero value means no filtering beyond excluding the requester.
type CandidateFilter struct {
	MinAge int
	MaxAge int
	City   string
}
