package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// GuidanceMode is the per-user switch controlling whether interventions are
// allowed to display at all.
type GuidanceMode string

// Possible guidance mode values
const (
	GuidanceModeFull   GuidanceMode = "full"
	GuidanceModeLight  GuidanceMode = "light"
	GuidanceModeSilent GuidanceMode = "silent"
)

// Common validation errors for GuidancePreferences
var (
	ErrEmptyPreferencesUserID = errors.New("guidance preferences user ID cannot be empty")
	ErrInvalidGuidanceMode    = errors.New("invalid guidance mode")
)

// GuidancePreferences holds a learner's persisted guidance settings.
// Preferences are mutated through an optimistic update with rollback on
// persistence failure; see the guidance service.
type GuidancePreferences struct {
	UserID               uuid.UUID    `json:"user_id"`
	OrientationCompleted bool         `json:"orientation_completed"`
	GuidanceMode         GuidanceMode `json:"guidance_mode"`
	VoiceEnabled         bool         `json:"voice_enabled"`
	CaptionsEnabled      bool         `json:"captions_enabled"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// NewGuidancePreferences creates default preferences for a user who has not
// completed orientation yet: full guidance with voice and captions on.
func NewGuidancePreferences(userID uuid.UUID) (*GuidancePreferences, error) {
	prefs := &GuidancePreferences{
		UserID:               userID,
		OrientationCompleted: false,
		GuidanceMode:         GuidanceModeFull,
		VoiceEnabled:         true,
		CaptionsEnabled:      true,
		UpdatedAt:            time.Now().UTC(),
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	return prefs, nil
}

// Validate checks if the GuidancePreferences has valid data.
// Returns an error if any field fails validation.
func (p *GuidancePreferences) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPreferencesUserID
	}

	switch p.GuidanceMode {
	case GuidanceModeFull, GuidanceModeLight, GuidanceModeSilent:
	default:
		return ErrInvalidGuidanceMode
	}

	return nil
}

// ActiveTrigger is one live intervention message. At most one non-expired
// trigger exists at a time; the guidance controller destroys it on explicit
// dismiss, on auto-expiry, or when a newer trigger supersedes it.
type ActiveTrigger struct {
	ID       uuid.UUID     `json:"id"`
	Text     string        `json:"text"`
	Emotion  string        `json:"emotion"`
	Duration time.Duration `json:"duration_ms,omitempty"` // zero means no auto-dismiss
}
