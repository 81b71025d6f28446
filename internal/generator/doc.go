// Package generator implements the init generator: it merges the commit
// tooling into package.json, writes the commitlint, commitizen and
// standard-version configuration and schedules the install and git hook
// tasks that run once the tree has been written.
package generator
