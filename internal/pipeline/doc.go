// Package pipeline runs an ordered list of effectful steps over one shared
// Context.
//
// A Pipeline is assembled up front: base steps first, then steps gated on
// flags that were resolved before assembly (AddStepIf). Flow threads the
// Context through each Step in order and stops at the first error, which is
// returned wrapped in a *StepError. Steps that can fail per item (one
// submodule, one missing optional file) log those failures themselves and
// keep going; only errors that break a step's postcondition are returned.
//
// There is no rollback: whatever earlier steps wrote stays on disk.
package pipeline
