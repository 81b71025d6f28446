// Package pkgjson reads, merges and re-encodes the root package.json of a
// workspace. Merges are pure: every function returns a new Manifest and
// never edits the one it was given. Encoding rewrites only the sections
// that changed, so unrelated user content and key order survive.
package pkgjson
