// Package versions holds the package version table installed by the init
// generator. The table is embedded as versions.yaml and exposed as an
// immutable value; callers derive variants with Without instead of editing
// shared state.
package versions
