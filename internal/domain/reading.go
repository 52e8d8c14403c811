package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReadingStatus represents the processing state of a chart reading.
type ReadingStatus string

// Possible reading status values
const (
	ReadingStatusPending    ReadingStatus = "pending"
	ReadingStatusProcessing ReadingStatus = "processing"
	ReadingStatusCompleted  ReadingStatus = "completed"
	ReadingStatusFailed     ReadingStatus = "failed"
)

// Common validation errors for Reading
var (
	ErrEmptyReadingID        = errors.New("reading ID cannot be empty")
	ErrEmptyReadingUserID    = errors.New("reading user ID cannot be empty")
	ErrEmptyReadingProfileID = errors.New("reading profile ID cannot be empty")
	ErrInvalidReadingStatus  = errors.New("invalid reading status")
	ErrEmptyReadingContent   = errors.New("completed reading must have content")
)

// Reading is a generated interpretation of a profile's natal chart.
// It starts pending and is filled in asynchronously.
type Reading struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	ProfileID uuid.UUID     `json:"profile_id"`
	Status    ReadingStatus `json:"status"`
	Content   string        `json:"content,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewReading creates a pending Reading for a profile.
// Returns an error if validation fails.
func NewReading(userID, profileID uuid.UUID) (*Reading, error) {
	now := time.Now().UTC()
	reading := &Reading{
		ID:        uuid.New(),
		UserID:    userID,
		ProfileID: profileID,
		Status:    ReadingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := reading.Validate(); err != nil {
		return nil, err
	}

	return reading, nil
}

// Validate checks if the Reading has valid data.
func (r *Reading) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReadingID
	}
	if r.UserID == uuid.Nil {
		return ErrEmptyReadingUserID
	}
	if r.ProfileID == uuid.Nil {
		return ErrEmptyReadingProfileID
	}
	if !isValidReadingStatus(r.Status) {
		return ErrInvalidReadingStatus
	}
	if r.Status == ReadingStatusCompleted && r.Content == "" {
		return ErrEmptyReadingContent
	}
	return nil
}

// UpdateStatus updates the reading's status and updates the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (r *Reading) UpdateStatus(status ReadingStatus) error {
	if !isValidReadingStatus(status) {
		return ErrInvalidReadingStatus
	}

	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete stores the generated content and marks the reading completed.
func (r *Reading) Complete(content string) error {
	if content == "" {
		return ErrEmptyReadingContent
	}
	r.Content = content
	return r.UpdateStatus(ReadingStatusCompleted)
}

// isValidReadingStatus checks if the given status is a valid ReadingStatus.
func isValidReadingStatus(status ReadingStatus) bool {
	switch status {
	case ReadingStatusPending, ReadingStatusProcessing, ReadingStatusCompleted, ReadingStatusFailed:
		return true
	default:
		return false
	}
}
