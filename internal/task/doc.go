// Package task provides the cancellable delayed-task scheduler the guidance
// controller uses for auto-dismiss timers.
//
// A scheduled function is represented by a Handle; cancelling the handle
// before it fires guarantees the function never runs. At most one dismiss
// timer is ever pending in the guidance controller, and superseding a trigger
// cancels the old handle before installing a new one, so a stale timer can
// never clear a newer trigger.
//
// The Scheduler interface has two implementations: TimerScheduler, backed by
// time.AfterFunc for production use, and ManualScheduler, a deterministic
// fake for tests that fires tasks only when told to advance.
package task
