// Package session implements the practice-session orchestrator: the state
// machine that drives a learner through a scheduled sequence of scenarios,
// tracks cumulative points and the simulated credit score, and persists
// choice outcomes.
//
// The state machine is
//
//	Loading -> (AwaitingChoice <-> ChoiceMade)* -> Complete
//
// Exactly one scenario is visible at a time. A second choice for the same
// scenario instance is rejected, the simulated score is clamped to its bounds
// after every update, and outcome persistence is best-effort: a failed append
// is logged and never blocks the learner.
//
// Session state lives in a plain struct behind pure-ish transition methods;
// the UI layer subscribes to state changes through the events package rather
// than polling.
package session
