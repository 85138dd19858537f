package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jordan/talentbridge/internal/ats"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Provider     string     `json:"provider"`
	Verified     bool       `json:"verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	VerifyExpiry *time.Time `json:"-"`
}

// PasswordReset is a pending password reset request. Tokens are stored
// hashed; the raw token only ever travels in the reset email.
type PasswordReset struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Report is a persisted ATS scoring result. The structured feedback
// columns are stored as JSONB and decoded on read.
type Report struct {
	ID                  uuid.UUID           `json:"id"`
	UserID              *uuid.UUID          `json:"user_id,omitempty"`
	ResumeName          string              `json:"resume_name"`
	Score               int                 `json:"score"`
	Level               ats.Level           `json:"level"`
	KeywordMatchPercent *int                `json:"keyword_match_percent,omitempty"`
	Breakdown           ats.Breakdown       `json:"breakdown"`
	Sections            ats.SectionStatus   `json:"sections"`
	Checklist           []ats.ChecklistItem `json:"checklist"`
	Issues              []ats.Issue         `json:"issues"`
	Fixes               []string            `json:"fixes"`
	Examples            []ats.Example       `json:"examples"`
	JobDescSnippet      string              `json:"job_desc_snippet,omitempty"`
	SchemaVersion       int                 `json:"schema_version"`
	CreatedAt           time.Time           `json:"created_at"`
}
