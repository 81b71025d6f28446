// Package tree provides a change-recording view of a workspace directory.
// Generators read and write through a Tree; nothing reaches the underlying
// afero.Fs until Commit is called, which makes dry runs and all-or-nothing
// generator failures cheap.
package tree
