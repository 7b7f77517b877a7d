// Package guidance implements the guidance session controller: per-session
// ownership of a learner's guidance preferences and the lifecycle of the
// single active intervention trigger.
//
// Preference updates are optimistic. A command object applies the patch
// locally, commits it to the preference store, and rolls the local copy back
// if the commit fails, surfacing the error to the caller.
//
// Trigger lifecycle: at most one trigger is live at a time. Installing a new
// trigger cancels any pending auto-dismiss timer from the previous one, and a
// generation counter guarantees a stale timer that fires anyway can never
// clear a newer trigger.
package guidance
