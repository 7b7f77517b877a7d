// Package domain contains the core entities of the adaptive guidance and
// content scheduling engine: scenario templates and their instantiated
// scenarios, per-template mastery statistics, behavioral telemetry signals,
// guidance preferences, and the summon-decision model.
//
// Domain types carry their own validation and sentinel errors. They have no
// dependencies on storage, transport, or any other layer; services and stores
// depend on this package, never the reverse.
package domain
