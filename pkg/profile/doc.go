// Package profile resolves named configuration profiles.
//
// A profile scopes what a tool processes: source globs per category, opaque
// boundaries, and scalar policies. Profiles live as JSON files under a
// profiles directory and may inherit from other profiles through `extends`.
//
// Key functionality:
//   - [Resolve]: walk the inheritance graph and merge everything onto the built-in default
//   - [Merge]: the merge primitive (array union with dedup, shallow maps, last writer wins)
//   - [Validate] and [ValidateDocument]: structured diagnostics instead of errors
//   - [Loader]: reads `<dir>/<id>/profile.json` or `<dir>/<id>.profile.json`
//   - [EnvOverrides] and [ParseAssignments]: partial profiles from the environment and CLI
//   - [JSONSchema] and [LintDocument]: JSON Schema for profile files
//
// Resolution never fails. Callers inspect [Result.Diagnostics] and treat
// error-level entries as fatal.
package profile
