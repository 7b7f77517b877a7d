package guidance

import (
	"context"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/store"
)

// PreferencePatch is a partial update to guidance preferences. Nil fields
// leave the current value unchanged.
type PreferencePatch struct {
	OrientationCompleted *bool                `json:"orientation_completed,omitempty"`
	GuidanceMode         *domain.GuidanceMode `json:"guidance_mode,omitempty"`
	VoiceEnabled         *bool                `json:"voice_enabled,omitempty"`
	CaptionsEnabled      *bool                `json:"captions_enabled,omitempty"`
}

// updateCommand models one optimistic preference update as an explicit
// apply/commit/rollback sequence, so the failure path is a single documented
// code path instead of closure-captured state.
type updateCommand struct {
	prefs    *domain.GuidancePreferences // the live copy the controller owns
	previous domain.GuidancePreferences  // value to restore on rollback
	store    store.PreferenceStore
}

func newUpdateCommand(prefs *domain.GuidancePreferences, s store.PreferenceStore) *updateCommand {
	return &updateCommand{
		prefs:    prefs,
		previous: *prefs,
		store:    s,
	}
}

// apply mutates the live copy with the patch. The pre-patch value stays
// available for rollback.
func (c *updateCommand) apply(patch PreferencePatch) {
	if patch.OrientationCompleted != nil {
		c.prefs.OrientationCompleted = *patch.OrientationCompleted
	}
	if patch.GuidanceMode != nil {
		c.prefs.GuidanceMode = *patch.GuidanceMode
	}
	if patch.VoiceEnabled != nil {
		c.prefs.VoiceEnabled = *patch.VoiceEnabled
	}
	if patch.CaptionsEnabled != nil {
		c.prefs.CaptionsEnabled = *patch.CaptionsEnabled
	}
}

// commit persists the applied value.
func (c *updateCommand) commit(ctx context.Context) error {
	return c.store.Upsert(ctx, c.prefs)
}

// rollback restores the pre-patch value on the live copy.
func (c *updateCommand) rollback() {
	*c.prefs = c.previous
}
