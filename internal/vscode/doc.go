// Package vscode edits the workspace editor settings under .vscode/.
package vscode
