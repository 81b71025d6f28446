// Package doctor inspects a workspace after init and reports which parts of
// the commit tooling are missing or out of date. It never modifies the
// workspace.
package doctor
