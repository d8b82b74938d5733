// Package permissions composes declarative permission presets into the
// explicit read/write form consumed by a sandbox.
//
// Presets are allow-lists only. [Combine] returns a [Builder] that folds
// presets and partial specs together with [MergeSpecs]; [Builder.Build]
// converts the accumulated intent with [ToRuntime]. Enforcement happens
// elsewhere.
package permissions
