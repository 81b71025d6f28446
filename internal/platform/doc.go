// Package platform hides operating-system differences in file permission
// handling. On Unix systems it applies chmod through the given afero.Fs; on
// Windows permission bits are ignored.
package platform
