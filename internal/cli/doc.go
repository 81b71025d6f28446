// Package cli defines the Cobra command tree for the nxcz CLI. Each file in
// this package registers one top-level command (init, mvc, build, etc.) with
// the root command. Command implementations delegate to internal packages
// and only handle flags and output.
package cli
