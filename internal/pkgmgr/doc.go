// Package pkgmgr detects the Node.js package manager of a workspace and
// runs its install command.
package pkgmgr
