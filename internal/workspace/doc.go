// Package workspace detects the shape of a monorepo's workspace description
// (workspace.json or the older angular.json) and classifies its projects
// into apps, libs and packages buckets used for commit scopes.
package workspace
