// Package rgerr defines the structured error kinds shared by every layer
// of the rewriting engine (see the error handling design in SPEC_FULL.md
// §7) and a small thread-safe collector for the one recoverable kind,
// TypingWarning.
//
// Every fallible operation in this module returns a plain Go error built
// with [New] or [Wrap]; callers discriminate with [Is] or [As] against the
// sentinel [Kind] values, mirroring the teacher's diag.Code/diag.Severity
// split trimmed down to this engine's fixed set of kinds.
package rgerr
